// Package metrics provides the Prometheus metrics of the site server.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all Prometheus metrics of gagesite. A nil *Metrics is valid
// and records nothing, so services can run without a registry.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	includeFailures *prometheus.CounterVec
	staffRenders    *prometheus.CounterVec
	scrapeTotal     *prometheus.CounterVec
	scrapeDuration  prometheus.Histogram
}

// New creates the metrics and registers them on registry.
func New(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gagesite_http_requests_total",
				Help: "Total number of HTTP requests partitioned by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gagesite_http_request_duration_seconds",
				Help:    "HTTP request latency partitioned by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		includeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gagesite_partial_include_failures_total",
				Help: "Total number of partial includes that left their placeholder untouched.",
			},
			[]string{"partial"},
		),
		staffRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gagesite_staff_renders_total",
				Help: "Total number of staff grid renders partitioned by outcome.",
			},
			[]string{"status"},
		),
		scrapeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gagesite_sports_scrapes_total",
				Help: "Total number of league scrapes partitioned by league and outcome.",
			},
			[]string{"league", "status"},
		),
		scrapeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gagesite_sports_scrape_duration_seconds",
				Help:    "Duration of a full sports scrape run.",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
			},
		),
	}

	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("register gagesite metrics: %w", err)
	}
	return m, nil
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.httpRequestsTotal.Describe(ch)
	m.httpRequestDuration.Describe(ch)
	m.includeFailures.Describe(ch)
	m.staffRenders.Describe(ch)
	m.scrapeTotal.Describe(ch)
	m.scrapeDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.httpRequestsTotal.Collect(ch)
	m.httpRequestDuration.Collect(ch)
	m.includeFailures.Collect(ch)
	m.staffRenders.Collect(ch)
	m.scrapeTotal.Collect(ch)
	m.scrapeDuration.Collect(ch)
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncludeFailed records a partial that could not be included.
func (m *Metrics) IncludeFailed(partial string) {
	if m == nil {
		return
	}
	m.includeFailures.WithLabelValues(partial).Inc()
}

// StaffRendered records a staff grid render; ok is false when the fallback
// message was shown.
func (m *Metrics) StaffRendered(ok bool) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "failure"
	}
	m.staffRenders.WithLabelValues(status).Inc()
}

// LeagueScraped records the outcome of one league scrape.
func (m *Metrics) LeagueScraped(league string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.scrapeTotal.WithLabelValues(league, status).Inc()
}

// ScrapeRunFinished records the duration of a full scrape run.
func (m *Metrics) ScrapeRunFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.scrapeDuration.Observe(d.Seconds())
}
