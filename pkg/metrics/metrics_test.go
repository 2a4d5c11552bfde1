package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SearchQueriesTotal.WithLabelValues("ANY", "match").Inc()
	m.SearchQueriesTotal.WithLabelValues("ANY", "match").Inc()
	m.RecordsLoaded.Set(3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	values := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[mf.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}
	if values["people_search_queries_total"] != 2 {
		t.Errorf("queries = %v, want 2", values["people_search_queries_total"])
	}
	if values["people_records_loaded"] != 3 {
		t.Errorf("records = %v, want 3", values["people_records_loaded"])
	}
}

func TestNewIsolatedRegistries(t *testing.T) {
	// registering twice on the global registry would panic
	New(nil)
	New(nil)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(nil)
	m.CacheHitsTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "people_search_cache_hits_total 1") {
		t.Errorf("scrape output missing cache hits:\n%s", body)
	}
}
