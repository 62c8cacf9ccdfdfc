// Package metrics holds the Prometheus collectors for search, providers and HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/honeycarbs/talentry/internal/domain/job"
)

// Collectors implements job.Recorder and backs /metrics
type Collectors struct {
	registry *prometheus.Registry

	CacheLookups   *prometheus.CounterVec
	ProviderCalls  *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	PatternErrors  *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
}

var _ job.Recorder = (*Collectors)(nil)

// New registers every collector on a fresh registry
func New() *Collectors {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collectors{
		registry: reg,
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentry_search_cache_lookups_total",
				Help: "Search cache lookups by result",
			},
			[]string{"result"},
		),
		ProviderCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentry_provider_requests_total",
				Help: "External search provider requests by outcome",
			},
			[]string{"provider", "outcome"},
		),
		SearchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "talentry_search_duration_seconds",
				Help:    "Duration of search operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		PatternErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentry_filter_pattern_errors_total",
				Help: "Filter stages skipped because the pattern did not compile",
			},
			[]string{"stage"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentry_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
	}
}

func (c *Collectors) CacheLookup(result job.Lookup) {
	c.CacheLookups.WithLabelValues(string(result)).Inc()
}

func (c *Collectors) ProviderRequest(provider string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.ProviderCalls.WithLabelValues(provider, outcome).Inc()
}

func (c *Collectors) SearchCompleted(source string, elapsed time.Duration) {
	c.SearchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// PatternError is the filter engine's pattern error hook
func (c *Collectors) PatternError(stage string) {
	c.PatternErrors.WithLabelValues(stage).Inc()
}

func (c *Collectors) HTTPRequest(route string, status int) {
	c.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus text format
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
