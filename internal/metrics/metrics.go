// Package metrics provides Prometheus instrumentation for the Animax server.
//
// The server registers its metrics here then mounts metrics.Handler() at
// GET /metrics (Prometheus scrape endpoint).
//
// Standard metrics exposed automatically by prometheus/client_golang:
//   - go_goroutines, go_gc_duration_seconds, etc. (Go runtime)
//   - process_cpu_seconds_total, process_open_fds, etc. (process)
//
// Animax-specific metrics registered here:
//
//	animax_http_requests_total            — counter: HTTP requests by method/path/status
//	animax_http_request_duration_seconds  — histogram: HTTP latency by method/path
//	animax_recommendations_built_total    — counter: recommendation builds by outcome
//	animax_signal_toggles_total           — counter: engagement toggles by namespace/state
//	animax_items_filtered_total           — counter: items hidden by the age gate
//	animax_catalog_fallbacks_total        — counter: catalog provider fallbacks by reason
//	animax_billing_events_total           — counter: billing events by type
//	animax_auth_events_total              — counter: auth events by type/result
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ── Counters ──────────────────────────────────────────────────────────────────

// HTTPRequests counts HTTP requests by method, path, and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "animax_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "path", "status"})

// RecommendationsBuilt counts recommendation builds by outcome ("hit", "empty").
var RecommendationsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "animax_recommendations_built_total",
	Help: "Recommendation list builds by outcome.",
}, []string{"outcome"})

// SignalToggles counts engagement toggles by namespace and resulting state.
var SignalToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "animax_signal_toggles_total",
	Help: "Engagement signal toggles by namespace and resulting state (on/off).",
}, []string{"namespace", "state"})

// ItemsFiltered counts catalog items hidden by the age gate.
var ItemsFiltered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "animax_items_filtered_total",
	Help: "Catalog items excluded by the age eligibility filter.",
})

// CatalogFallbacks counts falls back to the local catalog by reason.
var CatalogFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "animax_catalog_fallbacks_total",
	Help: "Catalog provider fallbacks to local data by reason.",
}, []string{"reason"})

// BillingEvents counts billing events (checkout, success, cancel, etc.).
var BillingEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "animax_billing_events_total",
	Help: "Billing lifecycle events.",
}, []string{"event"})

// AuthEvents counts auth events (login, register, verify, etc.).
var AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "animax_auth_events_total",
	Help: "Auth events by type.",
}, []string{"event", "result"})

// ── Histograms ────────────────────────────────────────────────────────────────

// HTTPDuration tracks HTTP request latency.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "animax_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
}, []string{"method", "path"})

// ── Handler ───────────────────────────────────────────────────────────────────

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ── Middleware ────────────────────────────────────────────────────────────────

// Middleware wraps an HTTP handler to record request counts and latency.
// path labels use the sanitized request path, not a template.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		dur := time.Since(start).Seconds()
		path := sanitizePath(r.URL.Path)
		status := strconv.Itoa(rw.status)
		HTTPRequests.WithLabelValues(r.Method, path, status).Inc()
		HTTPDuration.WithLabelValues(r.Method, path).Observe(dur)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// sanitizePath keeps label cardinality bounded for long content IDs.
func sanitizePath(path string) string {
	if len(path) > 64 {
		return path[:64] + "..."
	}
	return path
}

// ── Init (registry-scoped) ────────────────────────────────────────────────────

// Init registers Animax metrics with the given prometheus.Registerer.
// This is provided for testing — pass prometheus.NewRegistry() to get an
// isolated registry. In production all metrics are registered via promauto
// to prometheus.DefaultRegisterer at package init time.
func Init(reg prometheus.Registerer) {
	httpReqs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "animax_http_requests_total",
		Help: "Total HTTP requests handled.",
	}, []string{"method", "path", "status"})

	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "animax_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	recBuilt := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "animax_recommendations_built_total",
		Help: "Recommendation list builds by outcome.",
	}, []string{"outcome"})

	sigToggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "animax_signal_toggles_total",
		Help: "Engagement signal toggles by namespace and resulting state (on/off).",
	}, []string{"namespace", "state"})

	itemsFiltered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "animax_items_filtered_total",
		Help: "Catalog items excluded by the age eligibility filter.",
	})

	catalogFallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "animax_catalog_fallbacks_total",
		Help: "Catalog provider fallbacks to local data by reason.",
	}, []string{"reason"})

	billingEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "animax_billing_events_total",
		Help: "Billing lifecycle events.",
	}, []string{"event"})

	authEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "animax_auth_events_total",
		Help: "Auth events by type.",
	}, []string{"event", "result"})

	reg.MustRegister(
		httpReqs,
		httpDur,
		recBuilt,
		sigToggles,
		itemsFiltered,
		catalogFallbacks,
		billingEvents,
		authEvents,
	)
}
