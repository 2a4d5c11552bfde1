// Package metrics defines the Prometheus collectors for the people search
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      *prometheus.HistogramVec
	SearchResultsCount *prometheus.HistogramVec
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter
	RecordsLoaded      prometheus.Gauge
	IndexTerms         prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg gets a
// fresh registry, which keeps tests independent of the global one.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "people_search_queries_total",
				Help: "Total searches by strategy and result type (match, zero_result).",
			},
			[]string{"strategy", "result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "people_search_latency_seconds",
				Help:    "Search latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"cache_status"},
		),
		SearchResultsCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "people_search_results_count",
				Help:    "Number of records returned per search.",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 1000},
			},
			[]string{"strategy"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "people_search_cache_hits_total",
				Help: "Total number of result cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "people_search_cache_misses_total",
				Help: "Total number of result cache misses.",
			},
		),
		RecordsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "people_records_loaded",
				Help: "Number of records in the loaded collection.",
			},
		),
		IndexTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "people_index_terms",
				Help: "Number of distinct terms in the inverted index.",
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.RecordsLoaded,
		m.IndexTerms,
	)

	return m
}

// Handler returns the scrape handler for the registry m was created with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
