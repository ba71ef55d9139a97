// Package account implements viewer registration, login, email
// verification, and profile management for Animax.
package account

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/blackgoldstudios/animax/internal/ratelimit"
)

// sessionTTL is how long a login session (JWT + cookie) lasts.
const sessionTTL = 7 * 24 * time.Hour

// RegisterRoutes registers all account routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, db *sql.DB, limiter *ratelimit.Limiter) {
	mux.HandleFunc("/account/register", HandleRegister(db, limiter))
	mux.HandleFunc("/account/login", HandleLogin(db, limiter))
	mux.HandleFunc("/account/logout", HandleLogout())
	mux.HandleFunc("/account/verify", HandleVerifyEmail(db))
	mux.HandleFunc("/account/resend-verification", HandleResendVerification(db, limiter))
	mux.HandleFunc("/account/profile", HandleProfile(db))
}

// userInfo is the safe subset of viewer data returned to clients.
type userInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Plan          string `json:"plan"`
	MaxAgeRating  *int   `json:"max_age_rating"`
	EmailVerified bool   `json:"email_verified"`
}
