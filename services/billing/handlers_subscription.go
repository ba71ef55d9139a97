// handlers_subscription.go — subscription state endpoints.
package billing

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/metrics"
)

// subscriptionResponse is returned by GET /billing/subscription.
type subscriptionResponse struct {
	Plan       string     `json:"plan"`
	Status     string     `json:"status"`
	Start      *time.Time `json:"subscription_start,omitempty"`
	End        *time.Time `json:"subscription_end,omitempty"`
	PriceReais int        `json:"price_reais"`
	Expired    bool       `json:"expired"`
}

// handleSubscription processes GET /billing/subscription.
// Returns the current plan and subscription window for the viewer.
func (s *Server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	claims, err := auth.ValidateJWT(r)
	if err != nil {
		auth.WriteError(w, http.StatusUnauthorized, "unauthorized", "valid session required")
		return
	}

	var resp subscriptionResponse
	var start, end sql.NullTime
	err = s.db.QueryRowContext(r.Context(), `
		SELECT plan, subscription_status, subscription_start, subscription_end, subscription_price
		FROM users WHERE id = $1
	`, claims.Subject).Scan(&resp.Plan, &resp.Status, &start, &end, &resp.PriceReais)
	if err == sql.ErrNoRows {
		auth.WriteError(w, http.StatusNotFound, "not_found", "Account not found")
		return
	}
	if err != nil {
		auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not load subscription")
		return
	}

	if start.Valid {
		resp.Start = &start.Time
	}
	if end.Valid {
		resp.End = &end.Time
		resp.Expired = time.Now().After(end.Time)
	}

	auth.WriteJSON(w, http.StatusOK, resp)
}

// handleCancel processes POST /billing/cancel.
// Marks the subscription canceled; premium access runs until the period end.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}

	claims, err := auth.ValidateJWT(r)
	if err != nil {
		auth.WriteError(w, http.StatusUnauthorized, "unauthorized", "valid session required")
		return
	}

	result, err := s.db.ExecContext(r.Context(), `
		UPDATE users SET subscription_status = 'canceled'
		WHERE id = $1 AND subscription_status = 'active'
	`, claims.Subject)
	if err != nil {
		auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not cancel subscription")
		return
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		auth.WriteError(w, http.StatusBadRequest, "no_active_subscription",
			"There is no active subscription to cancel")
		return
	}

	metrics.BillingEvents.WithLabelValues("subscription_canceled").Inc()

	auth.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "canceled",
		"message": "Subscription canceled. Premium stays active until the end of the paid period.",
	})
}
