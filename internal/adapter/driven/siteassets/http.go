package siteassets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.PartialSource = (*HTTPSource)(nil)
	_ driven.StaffSource   = (*HTTPSource)(nil)
)

// maxAssetBytes bounds a fetched partial or staff list.
const maxAssetBytes = 4 << 20

// ErrAssetTooLarge indicates a remote asset exceeded maxAssetBytes.
var ErrAssetTooLarge = errors.New("asset exceeds size limit")

// HTTPSource fetches site assets from a remote static host. Relative refs are
// resolved against the host's site root.
type HTTPSource struct {
	client *http.Client
	base   *url.URL
}

// NewHTTPSource creates an HTTPSource for the site rooted at baseURL.
func NewHTTPSource(baseURL string) (*HTTPSource, error) {
	return NewHTTPSourceWithClient(&http.Client{Timeout: 10 * time.Second}, baseURL)
}

// NewHTTPSourceWithClient creates an HTTPSource using httpClient. Intended for
// tests, which inject an httptest server client.
func NewHTTPSourceWithClient(httpClient *http.Client, baseURL string) (*HTTPSource, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	return &HTTPSource{client: httpClient, base: u}, nil
}

// FetchPartial downloads the partial at ref. The request asks every cache on
// the way to revalidate.
func (s *HTTPSource) FetchPartial(ctx context.Context, ref string) ([]byte, error) {
	body, err := s.get(ctx, ref, "no-cache")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := readLimited(body, maxAssetBytes)
	if err != nil {
		return nil, fmt.Errorf("read partial %s: %w", ref, err)
	}
	return data, nil
}

// LoadStaff downloads and decodes the staff list at ref, bypassing caches.
func (s *HTTPSource) LoadStaff(ctx context.Context, ref string) ([]model.StaffRecord, error) {
	body, err := s.get(ctx, ref, "no-store")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := readLimited(body, maxAssetBytes)
	if err != nil {
		return nil, fmt.Errorf("read staff list %s: %w", ref, err)
	}
	return decodeStaff(bytes.NewReader(data))
}

// readLimited reads all of r, failing instead of truncating when r holds more
// than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrAssetTooLarge, limit)
	}
	return data, nil
}

func (s *HTTPSource) get(ctx context.Context, ref, cacheControl string) (io.ReadCloser, error) {
	target, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", target, err)
	}
	req.Header.Set("Cache-Control", cacheControl)
	req.Header.Set("Pragma", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", target, driven.ErrAssetNotFound)
		}
		return nil, &driven.StatusError{URL: target, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func (s *HTTPSource) resolve(ref string) (string, error) {
	u, err := url.Parse(strings.TrimPrefix(ref, "/"))
	if err != nil {
		return "", fmt.Errorf("parse ref %q: %w", ref, err)
	}
	return s.base.ResolveReference(u).String(), nil
}
