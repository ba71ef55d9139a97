// Package billing implements the premium upgrade flow: Stripe checkout,
// payment confirmation, and subscription state.
package billing

import (
	"database/sql"
	"net/http"

	"github.com/blackgoldstudios/animax/internal/auth"
	animaxstripe "github.com/blackgoldstudios/animax/internal/stripe"
)

// Server holds the billing handlers' collaborators. stripe may be nil when
// STRIPE_SECRET_KEY is unset; checkout then runs in dev mode and activates
// the subscription directly.
type Server struct {
	db     *sql.DB
	stripe *animaxstripe.Client
}

// New creates the billing server.
func New(db *sql.DB, sc *animaxstripe.Client) *Server {
	return &Server{db: db, stripe: sc}
}

// RegisterRoutes registers all billing routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/billing/checkout", s.handleCheckout)
	mux.HandleFunc("/billing/success", s.handleSuccess)
	mux.HandleFunc("/billing/subscription", s.handleSubscription)
	mux.HandleFunc("/billing/cancel", s.handleCancel)
}

// requireVerified resolves the session claims and enforces a verified email.
// Billing is the one surface where an unverified address is a hard stop.
func requireVerified(w http.ResponseWriter, r *http.Request) *auth.Claims {
	claims, err := auth.ValidateJWT(r)
	if err != nil {
		auth.WriteError(w, http.StatusUnauthorized, "unauthorized", "valid session required")
		return nil
	}
	if !claims.EmailVerified {
		auth.WriteError(w, http.StatusForbidden, "email_not_verified",
			"Verify your email before subscribing.")
		return nil
	}
	return claims
}
