// checkout.go — Stripe Checkout session creation and retrieval for the
// Animax premium subscription.
package stripe

import (
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v76"
)

// PremiumPlan describes the single paid tier. Price is in BRL cents for a
// 30-day subscription period.
const (
	PremiumPlanSlug   = "premium"
	PremiumPriceCents = 1000
	PremiumCurrency   = "brl"
)

// CheckoutParams carries viewer identity into the Stripe session metadata so
// the success handler can resolve who paid.
type CheckoutParams struct {
	UserID     string
	Email      string
	SuccessURL string
	CancelURL  string
}

// CreateCheckoutSession creates a subscription-mode Checkout Session for the
// premium plan. If STRIPE_PREMIUM_PRICE_ID is set, the pre-created price is
// used; otherwise price data is built inline so dev environments work without
// a Stripe dashboard setup step.
func (c *Client) CreateCheckoutSession(p CheckoutParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:    stripe.String(p.SuccessURL),
		CancelURL:     stripe.String(p.CancelURL),
		CustomerEmail: stripe.String(p.Email),
	}
	params.AddMetadata("user_id", p.UserID)
	params.AddMetadata("plan", PremiumPlanSlug)

	if priceID := os.Getenv("STRIPE_PREMIUM_PRICE_ID"); priceID != "" {
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(priceID),
			Quantity: stripe.Int64(1),
		}}
	} else {
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(PremiumCurrency),
				UnitAmount: stripe.Int64(PremiumPriceCents),
				Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
					Interval: stripe.String("month"),
				},
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Animax Premium"),
				},
			},
			Quantity: stripe.Int64(1),
		}}
	}

	sess, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return sess, nil
}

// GetCheckoutSession retrieves a Checkout Session by ID. The success handler
// uses this to confirm payment before activating the subscription.
func (c *Client) GetCheckoutSession(sessionID string) (*stripe.CheckoutSession, error) {
	sess, err := c.sc.CheckoutSessions.Get(sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("stripe get session %s: %w", sessionID, err)
	}
	return sess, nil
}

// SessionPaid reports whether a retrieved session has completed payment.
func SessionPaid(sess *stripe.CheckoutSession) bool {
	if sess == nil {
		return false
	}
	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
		sess.Status == stripe.CheckoutSessionStatusComplete
}
