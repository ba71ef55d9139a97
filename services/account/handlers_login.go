// handlers_login.go — login and logout handlers.
package account

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/email"
	"github.com/blackgoldstudios/animax/internal/metrics"
	"github.com/blackgoldstudios/animax/internal/ratelimit"
)

// loginRequest is the JSON body for POST /account/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin processes POST /account/login.
// Validates credentials, enforces rate limiting and lockout, and sets the
// session cookie on success.
func HandleLogin(db *sql.DB, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
			return
		}

		ip := ratelimit.ClientIP(r)
		if allowed, retryAfter := limiter.CheckLogin(r.Context(), ip); !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			auth.WriteError(w, http.StatusTooManyRequests, "rate_limited",
				"Too many login attempts from this IP. Please try again later.")
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if locked, retryAfter := limiter.CheckEmailLockout(r.Context(), req.Email); locked {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			auth.WriteError(w, http.StatusTooManyRequests, "account_temporarily_locked",
				fmt.Sprintf("Account temporarily locked. Try again in %d seconds.", retryAfter))
			return
		}

		var u struct {
			ID            string
			PasswordHash  string
			Name          string
			AvatarURL     string
			Plan          string
			MaxAgeRating  sql.NullInt64
			EmailVerified bool
		}
		err := db.QueryRowContext(r.Context(), `
			SELECT id, password_hash, name, avatar_url, plan, max_age_rating, email_verified
			FROM users WHERE email = $1
		`, req.Email).Scan(
			&u.ID, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.Plan, &u.MaxAgeRating, &u.EmailVerified,
		)

		// Run the bcrypt comparison even when the user is unknown so the
		// not-found path and the wrong-password path take similar time.
		dummyHash := "$2a$12$invalidhashfortimingattackprevention1234567890abcdef"
		hashToCheck := u.PasswordHash
		if err == sql.ErrNoRows || hashToCheck == "" {
			hashToCheck = dummyHash
		}
		passwordOK := auth.CheckPassword(hashToCheck, req.Password)

		if err == sql.ErrNoRows || !passwordOK {
			isLocked, lockoutSecs := limiter.RecordLoginFailure(r.Context(), req.Email)
			if isLocked && err == nil {
				displayName := u.Name
				if displayName == "" {
					displayName = req.Email
				}
				go email.SendLockoutNotification(req.Email, displayName, lockoutSecs/60)
			}

			metrics.AuthEvents.WithLabelValues("login", "fail").Inc()
			// Generic error — never reveal which field is wrong
			auth.WriteError(w, http.StatusUnauthorized, "invalid_credentials",
				"Invalid email or password")
			return
		}
		if err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Login failed")
			return
		}

		limiter.ResetLoginIP(r.Context(), ip)
		limiter.ResetLoginEmail(r.Context(), req.Email)

		maxAge := nullableInt(u.MaxAgeRating)
		token, err := auth.GenerateSessionToken(u.ID, req.Email, u.Name, u.Plan, maxAge, u.EmailVerified)
		if err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Login failed")
			return
		}
		auth.SetSessionCookie(w, token, sessionTTL)

		metrics.AuthEvents.WithLabelValues("login", "ok").Inc()

		auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"user": userInfo{
				ID:            u.ID,
				Email:         req.Email,
				Name:          u.Name,
				AvatarURL:     u.AvatarURL,
				Plan:          u.Plan,
				MaxAgeRating:  maxAge,
				EmailVerified: u.EmailVerified,
			},
		})
	}
}

// HandleLogout processes POST /account/logout. Sessions are stateless JWTs,
// so logout just expires the cookie.
func HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
			return
		}

		auth.ClearSessionCookie(w)
		auth.WriteJSON(w, http.StatusOK, map[string]string{"message": "Signed out."})
	}
}
