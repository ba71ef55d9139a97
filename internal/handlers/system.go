// system.go — GET /system/info: version and feature availability.
package handlers

import (
	"encoding/json"
	"net/http"
)

// Version is the Animax release version, overridable at build time with
// -ldflags "-X .../internal/handlers.Version=x.y.z".
var Version = "0.1.0"

// Features describes which optional integrations the running instance has.
type Features struct {
	TMDB     bool `json:"tmdb"`
	Stripe   bool `json:"stripe"`
	Redis    bool `json:"redis"`
	Postgres bool `json:"postgres"`
	Email    bool `json:"email"`
}

// SystemInfo is the response body for GET /system/info.
type SystemInfo struct {
	Service  string   `json:"service"`
	Version  string   `json:"version"`
	Features Features `json:"features"`
}

// HandleSystemInfo returns a handler reporting which integrations are wired.
// The catalog and discovery endpoints work without any of them; billing,
// accounts, and chat need their respective backends.
func HandleSystemInfo(features Features) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(SystemInfo{
			Service:  "animax",
			Version:  Version,
			Features: features,
		})
	}
}
