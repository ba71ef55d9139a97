// plans.go — Stripe product and price creation for the Animax premium plan.
// Run once against a fresh Stripe account via `go run ./cmd/seed
// --only=stripe`; the resulting price id goes into STRIPE_PREMIUM_PRICE_ID.
package stripe

import (
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/price"
	"github.com/stripe/stripe-go/v76/product"
)

// PlanPrices holds the Stripe IDs for the premium subscription plan.
type PlanPrices struct {
	ProductID      string
	PriceIDMonthly string
}

// CreatePremiumPlan creates the Animax Premium product and its monthly price.
func (c *Client) CreatePremiumPlan() (PlanPrices, error) {
	prod, err := product.New(&stripe.ProductParams{
		Name: stripe.String("Animax Premium"),
		Metadata: map[string]string{
			"animax_plan": PremiumPlanSlug,
		},
	})
	if err != nil {
		return PlanPrices{}, fmt.Errorf("product.New: %w", err)
	}

	monthly, err := price.New(&stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		Currency:   stripe.String(PremiumCurrency),
		UnitAmount: stripe.Int64(PremiumPriceCents),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String("month"),
		},
		Metadata: map[string]string{
			"animax_plan":    PremiumPlanSlug,
			"billing_period": "monthly",
		},
	})
	if err != nil {
		return PlanPrices{}, fmt.Errorf("price.New monthly: %w", err)
	}

	pp := PlanPrices{ProductID: prod.ID, PriceIDMonthly: monthly.ID}
	log.Printf("[billing] created Stripe premium plan: product=%s monthly=%s", pp.ProductID, pp.PriceIDMonthly)
	return pp, nil
}
