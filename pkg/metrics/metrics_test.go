package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape returned %d", rec.Code)
	}
	return rec.Body.String()
}

func TestCollectorsAreIsolatedPerRegistry(t *testing.T) {
	a := NewCollector(prometheus.NewRegistry())
	b := NewCollector(prometheus.NewRegistry())

	a.QueriesTotal.WithLabelValues("search").Inc()
	if strings.Contains(scrape(t, b), `emergencykb_kb_queries_total{action="search"}`) {
		t.Error("expected separate registries")
	}
	if !strings.Contains(scrape(t, a), `emergencykb_kb_queries_total{action="search"} 1`) {
		t.Error("expected counter on its own registry")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector(NewRegistry())
	c.TriageCategories.WithLabelValues("IMMEDIATE", "START").Inc()
	c.CorpusProtocols.Set(13)

	body := scrape(t, c)
	for _, want := range []string{
		`emergencykb_triage_classifications_total{algorithm="START",category="IMMEDIATE"} 1`,
		"emergencykb_corpus_protocols 13",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}
