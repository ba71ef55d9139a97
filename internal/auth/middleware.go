// middleware.go — HTTP middleware for session enforcement.
// Tokens arrive either as the animax_session cookie (browser clients)
// or as an Authorization: Bearer header (API clients).
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SessionCookie is the name of the browser session cookie.
const SessionCookie = "animax_session"

// contextKey is an unexported type to avoid context key collisions.
type contextKey string

const claimsKey contextKey = "auth_claims"

// RequireAuth is an HTTP middleware that validates the session token.
// On success, injects the parsed claims into the request context.
// On failure, responds with 401 JSON.
func RequireAuth(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "missing_token", "Authentication required")
			return
		}

		claims, err := ValidateSessionToken(tokenStr)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OptionalAuth injects claims into the context when a valid session token is
// present, and passes the request through anonymously otherwise. Discovery
// endpoints use this: anonymous viewers browse with the default age ceiling.
func OptionalAuth(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tokenStr := extractToken(r); tokenStr != "" {
			if claims, err := ValidateSessionToken(tokenStr); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	}
}

// RequireVerifiedEmail extends RequireAuth by also requiring email_verified = true.
// Use this for billing and community features.
func RequireVerifiedEmail(next http.Handler) http.HandlerFunc {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || !claims.EmailVerified {
			writeError(w, http.StatusForbidden, "email_not_verified",
				"Email verification required. Check your inbox or request a new verification code.")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// ClaimsFromContext extracts JWT claims from the request context.
// Returns nil if no auth middleware was applied or the viewer is anonymous.
func ClaimsFromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(claimsKey).(*Claims); ok {
		return c
	}
	return nil
}

// UserIDFromContext extracts the viewer ID from JWT claims in context.
// Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.Subject
}

// ValidateJWT extracts and validates the session token from an HTTP request.
// This is a lightweight alternative to the RequireAuth middleware for
// handlers that resolve auth themselves.
func ValidateJWT(r *http.Request) (*Claims, error) {
	tokenStr := extractToken(r)
	if tokenStr == "" {
		return nil, http.ErrNoCookie
	}
	return ValidateSessionToken(tokenStr)
}

// SetSessionCookie writes the session cookie on a response. Secure is left
// off so local development over plain HTTP works; HttpOnly keeps the token
// away from scripts.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// extractToken pulls the session token from the cookie, falling back to
// "Authorization: Bearer <token>". Returns empty string if neither is present.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
