// Package handlers provides shared HTTP handlers used across Animax services:
// liveness, readiness, and system info.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger is anything with a context-aware health ping. *sql.DB satisfies it
// directly; the Redis client is wrapped at the call site.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// healthResponse is the body for /healthz and /ready.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Liveness handles GET /healthz. Always 200: the process is up.
func Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthResponse{Status: "ok"})
}

// Readiness returns a handler for GET /ready that pings each dependency.
// Nil dependencies are skipped, so a deployment without Redis still reports
// ready. Any failing check yields 503 with status "degraded".
func Readiness(db, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: map[string]string{}}

		check := func(name string, p Pinger) {
			if p == nil {
				return
			}
			if err := p.PingContext(ctx); err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				return
			}
			resp.Checks[name] = "ok"
		}
		check("postgres", db)
		check("redis", redis)

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
