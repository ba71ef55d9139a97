// handlers_register.go — viewer registration and email verification handlers.
package account

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/email"
	"github.com/blackgoldstudios/animax/internal/metrics"
	"github.com/blackgoldstudios/animax/internal/ratelimit"
	"github.com/blackgoldstudios/animax/internal/validate"
)

// verificationCodeTTL is how long a 6-digit email verification code stays valid.
const verificationCodeTTL = 15 * time.Minute

// registerRequest is the JSON body for POST /account/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// registerResponse is returned on successful registration.
type registerResponse struct {
	User    userInfo `json:"user"`
	Message string   `json:"message"`
}

// HandleRegister processes POST /account/register.
// Creates a viewer on the basic plan, hashes their password, generates a
// 6-digit verification code, and dispatches the verification email.
// Rate limited: 5 registrations per IP per hour.
func HandleRegister(db *sql.DB, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
			return
		}

		ip := ratelimit.ClientIP(r)
		if allowed, retryAfter := limiter.CheckRegistration(r.Context(), ip); !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			auth.WriteError(w, http.StatusTooManyRequests, "rate_limited",
				"Too many registration attempts. Please try again later.")
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if err := validate.IsEmail("email", req.Email); err != nil {
			auth.WriteError(w, http.StatusBadRequest, "invalid_email", "Email address is not valid")
			return
		}
		if len(req.Password) < 8 {
			auth.WriteError(w, http.StatusBadRequest, "weak_password",
				"Password must be at least 8 characters")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if err := validate.MaxLength("name", req.Name, 100); err != nil {
			auth.WriteError(w, http.StatusBadRequest, "invalid_name",
				"Name must be 100 characters or less")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Registration failed")
			return
		}

		userID := uuid.NewString()
		_, err = db.ExecContext(r.Context(), `
			INSERT INTO users (id, email, password_hash, name, plan, email_verified)
			VALUES ($1, $2, $3, $4, 'basic', false)
		`, userID, req.Email, hash, req.Name)

		if err != nil {
			if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
				// Privacy: generic message, don't reveal that the email exists
				metrics.AuthEvents.WithLabelValues("register", "conflict").Inc()
				auth.WriteError(w, http.StatusConflict, "registration_failed",
					"Unable to create account with these details")
				return
			}
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Registration failed")
			return
		}

		// Generate and dispatch the verification code — fire and forget so a
		// slow email provider never blocks the registration response.
		if code, err := issueVerificationCode(db, userID); err == nil {
			displayName := req.Name
			if displayName == "" {
				displayName = req.Email
			}
			go email.SendVerificationCode(req.Email, displayName, code)
		}

		metrics.AuthEvents.WithLabelValues("register", "ok").Inc()

		// New accounts start logged in. The claims carry email_verified=false
		// until the code is confirmed.
		token, err := auth.GenerateSessionToken(userID, req.Email, req.Name, "basic", nil, false)
		if err == nil {
			auth.SetSessionCookie(w, token, sessionTTL)
		}

		auth.WriteJSON(w, http.StatusCreated, registerResponse{
			User: userInfo{
				ID:    userID,
				Email: req.Email,
				Name:  req.Name,
				Plan:  "basic",
			},
			Message: "Account created. Check your email for the verification code.",
		})
	}
}

// verifyRequest is the JSON body for POST /account/verify.
type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// HandleVerifyEmail processes POST /account/verify.
// Matches the 6-digit code against the newest unused code for the viewer,
// marks the email verified, and refreshes the session cookie when the
// requester holds a session for the same account.
func HandleVerifyEmail(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
			return
		}

		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if err := validate.IsVerificationCode("code", req.Code); err != nil {
			auth.WriteError(w, http.StatusBadRequest, "invalid_code", "Code must be 6 digits")
			return
		}

		var u struct {
			ID            string
			Name          string
			Plan          string
			MaxAgeRating  sql.NullInt64
			EmailVerified bool
		}
		err := db.QueryRowContext(r.Context(), `
			SELECT id, name, plan, max_age_rating, email_verified
			FROM users WHERE email = $1
		`, req.Email).Scan(&u.ID, &u.Name, &u.Plan, &u.MaxAgeRating, &u.EmailVerified)
		if err == sql.ErrNoRows {
			metrics.AuthEvents.WithLabelValues("verify", "fail").Inc()
			auth.WriteError(w, http.StatusNotFound, "invalid_code", "Verification code not found")
			return
		}
		if err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Verification failed")
			return
		}
		if u.EmailVerified {
			auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
				"message":        "Email already verified.",
				"email_verified": true,
			})
			return
		}

		// Newest unused code wins; older codes are implicitly dead.
		var codeID string
		var expiresAt time.Time
		err = db.QueryRowContext(r.Context(), `
			SELECT id, expires_at FROM verification_codes
			WHERE user_id = $1 AND code = $2 AND used_at IS NULL
			ORDER BY created_at DESC LIMIT 1
		`, u.ID, req.Code).Scan(&codeID, &expiresAt)
		if err == sql.ErrNoRows {
			metrics.AuthEvents.WithLabelValues("verify", "fail").Inc()
			auth.WriteError(w, http.StatusNotFound, "invalid_code", "Verification code not found")
			return
		}
		if err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Verification failed")
			return
		}
		if time.Now().After(expiresAt) {
			metrics.AuthEvents.WithLabelValues("verify", "expired").Inc()
			auth.WriteError(w, http.StatusGone, "code_expired",
				"Verification code has expired. Request a new one.")
			return
		}

		tx, err := db.BeginTx(r.Context(), nil)
		if err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Verification failed")
			return
		}
		defer tx.Rollback()

		tx.ExecContext(r.Context(), `UPDATE verification_codes SET used_at = now() WHERE id = $1`, codeID)
		tx.ExecContext(r.Context(), `UPDATE users SET email_verified = true WHERE id = $1`, u.ID)

		if err := tx.Commit(); err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Verification failed")
			return
		}

		metrics.AuthEvents.WithLabelValues("verify", "ok").Inc()

		// Refresh the session cookie so claims pick up email_verified=true,
		// but only for the session's own account.
		if claims, err := auth.ValidateJWT(r); err == nil && claims.Subject == u.ID {
			maxAge := nullableInt(u.MaxAgeRating)
			if token, err := auth.GenerateSessionToken(u.ID, req.Email, u.Name, u.Plan, maxAge, true); err == nil {
				auth.SetSessionCookie(w, token, sessionTTL)
			}
		}

		auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message":        "Email verified successfully.",
			"email_verified": true,
		})
	}
}

// HandleResendVerification processes POST /account/resend-verification.
// Rate limited: 1 per email per 5 minutes. Always returns 200 (privacy).
func HandleResendVerification(db *sql.DB, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
			return
		}

		successMsg := map[string]string{
			"message": "If this email is registered and unverified, a new verification code will be sent.",
		}

		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteJSON(w, http.StatusOK, successMsg)
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if allowed, _ := limiter.CheckResendVerification(r.Context(), req.Email); !allowed {
			// Still 200 — don't reveal that the email is known or rate limited
			auth.WriteJSON(w, http.StatusOK, successMsg)
			return
		}

		var userID, name string
		err := db.QueryRowContext(r.Context(), `
			SELECT id, COALESCE(NULLIF(name, ''), email) FROM users
			WHERE email = $1 AND email_verified = false
		`, req.Email).Scan(&userID, &name)

		if err == nil {
			// Invalidate outstanding codes before issuing a fresh one
			db.ExecContext(r.Context(), `
				UPDATE verification_codes SET used_at = now()
				WHERE user_id = $1 AND used_at IS NULL
			`, userID)

			if code, err := issueVerificationCode(db, userID); err == nil {
				go email.SendVerificationCode(req.Email, name, code)
				metrics.AuthEvents.WithLabelValues("resend_verification", "ok").Inc()
			}
		}

		auth.WriteJSON(w, http.StatusOK, successMsg)
	}
}

// issueVerificationCode creates and stores a fresh 6-digit code for the
// viewer, returning the code to embed in the email.
func issueVerificationCode(db *sql.DB, userID string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	_, err = db.Exec(`
		INSERT INTO verification_codes (id, user_id, code, expires_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), userID, code, time.Now().Add(verificationCodeTTL))
	if err != nil {
		return "", err
	}
	return code, nil
}

// nullableInt converts a sql.NullInt64 to the *int the claims carry.
func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
