// metrics_test.go — Unit tests for Prometheus metrics.
package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestInit_RegistersWithoutPanic verifies that calling Init with a fresh
// registry does not panic. Successful registration is the invariant —
// if any metric descriptor is invalid or duplicated within the registry,
// MustRegister panics.
func TestInit_RegistersWithoutPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	// Must not panic.
	Init(reg)
}

// TestInit_DoubleRegistrationPanics confirms that registering the same metric
// names twice to the same registry panics (standard prometheus behavior).
// This is a safety check — it proves Init really is registering something.
func TestInit_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg) // first call succeeds

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on double registration, but Init did not panic")
		}
	}()
	Init(reg) // second call must panic
}

// TestCounters_Increment confirms counter vecs increment correctly via a new
// isolated registry, using the same shapes as the package-level metrics.
func TestCounters_Increment(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_http_requests_total",
	}, []string{"method", "path", "status"})
	reg.MustRegister(counter)

	counter.WithLabelValues("GET", "/home", "200").Inc()
	counter.WithLabelValues("GET", "/home", "200").Inc()
	counter.WithLabelValues("POST", "/signals/liked/toggle", "401").Inc()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	var totalCount float64
	for _, mf := range mfs {
		if mf.GetName() == "test_http_requests_total" {
			for _, m := range mf.GetMetric() {
				totalCount += m.GetCounter().GetValue()
			}
		}
	}

	if totalCount != 3 {
		t.Errorf("expected 3 total requests, got %v", totalCount)
	}
}

// TestHandler_Returns200 confirms the metrics HTTP handler responds correctly.
func TestHandler_Returns200(t *testing.T) {
	h := Handler()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Handler() status = %d; want 200", w.Code)
	}
	body := w.Body.String()
	// Prometheus always includes at least go_ metrics in the default registry.
	if !strings.Contains(body, "go_") && !strings.Contains(body, "# HELP") {
		t.Error("expected Prometheus text format in response body")
	}
}

// TestMiddleware_RecordsMetrics confirms the HTTP middleware records a request.
func TestMiddleware_RecordsMetrics(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := Middleware(inner)

	req := httptest.NewRequest(http.MethodGet, "/middleware-sample", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("wrapped handler returned %d; want 204", w.Code)
	}

	// Gather default registry — our promauto metrics are registered there.
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "animax_http_requests_total" {
			for _, m := range mf.GetMetric() {
				for _, lp := range m.GetLabel() {
					if lp.GetName() == "path" && lp.GetValue() == "/middleware-sample" {
						found = true
					}
				}
			}
		}
	}
	if !found {
		t.Error("animax_http_requests_total not found for path=/middleware-sample after middleware call")
	}
}

// TestSanitizePath_LongPath confirms long paths are truncated.
func TestSanitizePath_LongPath(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := sanitizePath(long)
	if len(got) > 67 { // 64 + "..."
		t.Errorf("sanitizePath did not truncate: len=%d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated path should end with ..., got %q", got)
	}
}

// TestSanitizePath_ShortPath confirms short paths pass through unchanged.
func TestSanitizePath_ShortPath(t *testing.T) {
	path := "/watch/movie-1"
	got := sanitizePath(path)
	if got != path {
		t.Errorf("sanitizePath(%q) = %q; want unchanged", path, got)
	}
}
