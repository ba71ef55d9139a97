// handlers_checkout.go — checkout session creation and payment confirmation.
package billing

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/email"
	"github.com/blackgoldstudios/animax/internal/metrics"
	animaxstripe "github.com/blackgoldstudios/animax/internal/stripe"
)

// subscriptionDays is the length of one paid premium period.
const subscriptionDays = 30

// handleCheckout processes POST /billing/checkout.
// Creates a Stripe checkout session for the premium plan and returns its URL.
// Without a Stripe key (dev mode) the subscription is activated directly.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}

	claims := requireVerified(w, r)
	if claims == nil {
		return
	}

	if claims.Plan == animaxstripe.PremiumPlanSlug {
		auth.WriteError(w, http.StatusConflict, "already_premium",
			"This account already has an active premium subscription.")
		return
	}

	if s.stripe == nil {
		// Dev mode: no payment provider, activate directly.
		log.Printf("[billing] dev mode: activating premium for %s without payment", claims.Subject)
		if err := s.activatePremium(r, w, claims.Subject); err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not activate subscription")
			return
		}
		metrics.BillingEvents.WithLabelValues("dev_activation").Inc()
		auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"dev_mode": true,
			"message":  "Premium activated (no payment provider configured).",
		})
		return
	}

	base := baseURL()
	sess, err := s.stripe.CreateCheckoutSession(animaxstripe.CheckoutParams{
		UserID:     claims.Subject,
		Email:      claims.Email,
		SuccessURL: base + "/billing/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  base + "/premium",
	})
	if err != nil {
		log.Printf("[billing] checkout session failed for %s: %v", claims.Subject, err)
		auth.WriteError(w, http.StatusBadGateway, "stripe_error", "Could not start checkout")
		return
	}

	metrics.BillingEvents.WithLabelValues("checkout_created").Inc()
	auth.WriteJSON(w, http.StatusOK, map[string]string{
		"session_id":   sess.ID,
		"checkout_url": sess.URL,
	})
}

// handleSuccess processes GET /billing/success?session_id=cs_xxx.
// Confirms the checkout session was paid and activates the premium plan.
func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	claims, err := auth.ValidateJWT(r)
	if err != nil {
		auth.WriteError(w, http.StatusUnauthorized, "unauthorized", "valid session required")
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		auth.WriteError(w, http.StatusBadRequest, "missing_session_id", "session_id is required")
		return
	}

	if s.stripe == nil {
		auth.WriteError(w, http.StatusServiceUnavailable, "billing_unavailable",
			"Payment provider is not configured")
		return
	}

	sess, err := s.stripe.GetCheckoutSession(sessionID)
	if err != nil {
		auth.WriteError(w, http.StatusNotFound, "session_not_found", "Checkout session not found")
		return
	}
	if !animaxstripe.SessionPaid(sess) {
		metrics.BillingEvents.WithLabelValues("payment_incomplete").Inc()
		auth.WriteError(w, http.StatusPaymentRequired, "payment_incomplete",
			"Payment has not completed for this session")
		return
	}
	// The session's metadata ties it to the account that started checkout.
	if sess.Metadata["user_id"] != claims.Subject {
		auth.WriteError(w, http.StatusForbidden, "session_mismatch",
			"Checkout session belongs to a different account")
		return
	}

	if err := s.activatePremium(r, w, claims.Subject); err != nil {
		auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not activate subscription")
		return
	}
	metrics.BillingEvents.WithLabelValues("subscription_activated").Inc()

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"plan":    animaxstripe.PremiumPlanSlug,
		"message": "Premium subscription active.",
	})
}

// activatePremium flips the viewer to the premium plan for one period,
// refreshes the session cookie, and sends the confirmation email.
func (s *Server) activatePremium(r *http.Request, w http.ResponseWriter, userID string) error {
	now := time.Now()
	end := now.AddDate(0, 0, subscriptionDays)

	_, err := s.db.ExecContext(r.Context(), `
		UPDATE users
		SET plan = $2, subscription_status = 'active',
			subscription_start = $3, subscription_end = $4, subscription_price = $5
		WHERE id = $1
	`, userID, animaxstripe.PremiumPlanSlug, now, end, animaxstripe.PremiumPriceCents/100)
	if err != nil {
		return fmt.Errorf("activate premium: %w", err)
	}

	var u struct {
		Email         string
		Name          string
		MaxAgeRating  sql.NullInt64
		EmailVerified bool
	}
	err = s.db.QueryRowContext(r.Context(), `
		SELECT email, name, max_age_rating, email_verified FROM users WHERE id = $1
	`, userID).Scan(&u.Email, &u.Name, &u.MaxAgeRating, &u.EmailVerified)
	if err != nil {
		return fmt.Errorf("reload user: %w", err)
	}

	var maxAge *int
	if u.MaxAgeRating.Valid {
		v := int(u.MaxAgeRating.Int64)
		maxAge = &v
	}
	if token, err := auth.GenerateSessionToken(userID, u.Email, u.Name,
		animaxstripe.PremiumPlanSlug, maxAge, u.EmailVerified); err == nil {
		auth.SetSessionCookie(w, token, 7*24*time.Hour)
	}

	displayName := u.Name
	if displayName == "" {
		displayName = u.Email
	}
	go email.SendSubscriptionActivated(u.Email, displayName,
		animaxstripe.PremiumPlanSlug, end.Format("02/01/2006"))

	return nil
}

// baseURL returns the public Animax base URL used in redirect links.
func baseURL() string {
	if u := os.Getenv("ANIMAX_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:3000"
}
