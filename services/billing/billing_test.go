// Integration tests for billing endpoints. Checkout against real Stripe is
// not exercised here; the dev-mode path covers activation end to end.
package billing

import (
	"net/http"
	"testing"

	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/testutil"
)

func newTestMux(t *testing.T) (*http.ServeMux, *testutil.User) {
	t.Helper()
	t.Setenv("ANIMAX_JWT_SECRET", "test-secret")

	db := testutil.MustOpenDB(t)
	t.Cleanup(func() { db.Close() })

	u := testutil.SeedUser(t, db)

	mux := http.NewServeMux()
	New(db, nil).RegisterRoutes(mux) // nil Stripe client: dev mode
	return mux, u
}

func cookieFor(t *testing.T, u *testutil.User, plan string, verified bool) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateSessionToken(u.ID, u.Email, u.Name, plan, nil, verified)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func TestCheckoutDevMode(t *testing.T) {
	mux, u := newTestMux(t)

	t.Run("requires a session", func(t *testing.T) {
		rr := testutil.PostJSON(t, mux, "/billing/checkout", map[string]string{})
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("requires a verified email", func(t *testing.T) {
		rr := testutil.PostJSON(t, mux, "/billing/checkout", map[string]string{},
			cookieFor(t, u, "basic", false))
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("activates premium directly without a payment provider", func(t *testing.T) {
		rr := testutil.PostJSON(t, mux, "/billing/checkout", map[string]string{},
			cookieFor(t, u, "basic", true))
		testutil.AssertStatus(t, rr, http.StatusOK)

		fresh := testutil.SessionCookie(t, rr, auth.SessionCookie)
		claims, err := auth.ValidateSessionToken(fresh.Value)
		if err != nil {
			t.Fatalf("refreshed cookie did not validate: %v", err)
		}
		if claims.Plan != "premium" {
			t.Errorf("expected premium claims, got plan %q", claims.Plan)
		}
	})

	t.Run("rejects checkout when already premium", func(t *testing.T) {
		rr := testutil.PostJSON(t, mux, "/billing/checkout", map[string]string{},
			cookieFor(t, u, "premium", true))
		testutil.AssertStatus(t, rr, http.StatusConflict)
	})
}

func TestSubscriptionLifecycle(t *testing.T) {
	mux, u := newTestMux(t)
	cookie := cookieFor(t, u, "basic", true)

	// Activate via dev-mode checkout first.
	rr := testutil.PostJSON(t, mux, "/billing/checkout", map[string]string{}, cookie)
	testutil.AssertStatus(t, rr, http.StatusOK)

	t.Run("subscription reflects the active premium window", func(t *testing.T) {
		rr := testutil.GetJSON(t, mux, "/billing/subscription", cookie)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp subscriptionResponse
		testutil.DecodeJSON(t, rr, &resp)
		if resp.Plan != "premium" || resp.Status != "active" {
			t.Errorf("unexpected subscription: %+v", resp)
		}
		if resp.End == nil || resp.Expired {
			t.Errorf("expected a live subscription window: %+v", resp)
		}
		if resp.PriceReais != 10 {
			t.Errorf("expected price 10, got %d", resp.PriceReais)
		}
	})

	t.Run("cancel marks the subscription canceled", func(t *testing.T) {
		rr := testutil.PostJSON(t, mux, "/billing/cancel", map[string]string{}, cookie)
		testutil.AssertStatus(t, rr, http.StatusOK)

		rr = testutil.GetJSON(t, mux, "/billing/subscription", cookie)
		var resp subscriptionResponse
		testutil.DecodeJSON(t, rr, &resp)
		if resp.Status != "canceled" {
			t.Errorf("expected canceled status, got %q", resp.Status)
		}
	})

	t.Run("cancel again fails", func(t *testing.T) {
		rr := testutil.PostJSON(t, mux, "/billing/cancel", map[string]string{}, cookie)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("success without a payment provider is unavailable", func(t *testing.T) {
		rr := testutil.GetJSON(t, mux, "/billing/success?session_id=cs_test_123", cookie)
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	})
}
