package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err, "registering twice on the same registry should fail")
}

func TestMetrics_Counters(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.IncludeFailed("header")
	m.IncludeFailed("header")
	m.StaffRendered(false)
	m.LeagueScraped("soccer-filles-junior", errors.New("boom"))
	m.ObserveHTTP("GET", "/", 200, 5*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.includeFailures.WithLabelValues("header")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.staffRenders.WithLabelValues("failure")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.scrapeTotal.WithLabelValues("soccer-filles-junior", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/", "200")), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncludeFailed("footer")
		m.StaffRendered(true)
		m.LeagueScraped("x", nil)
		m.ScrapeRunFinished(time.Second)
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}
