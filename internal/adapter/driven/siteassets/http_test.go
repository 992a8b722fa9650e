package siteassets

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
)

func newTestSource(t *testing.T, handler http.Handler) *HTTPSource {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	src, err := NewHTTPSourceWithClient(server.Client(), server.URL+"/site")
	require.NoError(t, err)
	return src
}

func TestHTTPSource_FetchPartial(t *testing.T) {
	var gotPath, gotCache string
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCache = r.Header.Get("Cache-Control")
		_, _ = w.Write([]byte(`<footer id="footer"></footer>`))
	}))

	data, err := src.FetchPartial(context.Background(), "partials/footer.html")

	require.NoError(t, err)
	assert.Equal(t, `<footer id="footer"></footer>`, string(data))
	assert.Equal(t, "/site/partials/footer.html", gotPath)
	assert.Equal(t, "no-cache", gotCache)
}

func TestHTTPSource_FetchPartial_StatusError(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := src.FetchPartial(context.Background(), "partials/header.html")

	var statusErr *driven.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestHTTPSource_FetchPartial_NotFound(t *testing.T) {
	src := newTestSource(t, http.NotFoundHandler())

	_, err := src.FetchPartial(context.Background(), "partials/header.html")
	assert.ErrorIs(t, err, driven.ErrAssetNotFound)
}

func TestHTTPSource_LoadStaff_BypassesCache(t *testing.T) {
	var gotCache string
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCache = r.Header.Get("Cache-Control")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"A"},{"name":"B"}]`))
	}))

	records, err := src.LoadStaff(context.Background(), "assets/data/staff.json")

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "no-store", gotCache)
}

func TestHTTPSource_LoadStaff_NullEntry(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[null]`))
	}))

	_, err := src.LoadStaff(context.Background(), "assets/data/staff.json")
	assert.ErrorContains(t, err, "entry 0 is null")
}

func TestHTTPSource_FetchPartial_TooLarge(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxAssetBytes+1))
	}))

	data, err := src.FetchPartial(context.Background(), "partials/header.html")
	assert.ErrorIs(t, err, ErrAssetTooLarge)
	assert.Nil(t, data)
}

func TestReadLimited(t *testing.T) {
	data, err := readLimited(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(data))

	_, err = readLimited(strings.NewReader("abcde"), 4)
	assert.ErrorIs(t, err, ErrAssetTooLarge)
}

func TestNewHTTPSource_RequiresAbsoluteBase(t *testing.T) {
	_, err := NewHTTPSource("relative/site")
	assert.Error(t, err)
}
