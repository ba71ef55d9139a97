// handlers_profile.go — viewer profile read and update.
package account

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/blackgoldstudios/animax/internal/agegate"
	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/validate"
)

// profileUpdateRequest is the JSON body for PATCH /account/profile.
// Absent fields are left unchanged. MaxAgeRating accepts null to clear the
// explicit ceiling and fall back to the default.
type profileUpdateRequest struct {
	Name         *string `json:"name"`
	AvatarURL    *string `json:"avatar_url"`
	MaxAgeRating *int    `json:"max_age_rating"`
	ClearCeiling bool    `json:"clear_max_age_rating"`
}

// HandleProfile processes GET and PATCH /account/profile.
func HandleProfile(db *sql.DB) http.HandlerFunc {
	return auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getProfile(db, w, r)
		case http.MethodPatch:
			updateProfile(db, w, r)
		default:
			auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET or PATCH required")
		}
	}))
}

func getProfile(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var u userInfo
	var maxAge sql.NullInt64
	err := db.QueryRowContext(r.Context(), `
		SELECT id, email, name, avatar_url, plan, max_age_rating, email_verified
		FROM users WHERE id = $1
	`, userID).Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.Plan, &maxAge, &u.EmailVerified)
	if err == sql.ErrNoRows {
		auth.WriteError(w, http.StatusNotFound, "not_found", "Account not found")
		return
	}
	if err != nil {
		auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not load profile")
		return
	}
	u.MaxAgeRating = nullableInt(maxAge)

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": u})
}

func updateProfile(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}

	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
		if err := validate.MaxLength("name", *req.Name, 100); err != nil {
			auth.WriteError(w, http.StatusBadRequest, "invalid_name",
				"Name must be 100 characters or less")
			return
		}
	}
	if req.AvatarURL != nil {
		*req.AvatarURL = strings.TrimSpace(*req.AvatarURL)
		if err := validate.MaxLength("avatar_url", *req.AvatarURL, 500); err != nil {
			auth.WriteError(w, http.StatusBadRequest, "invalid_avatar_url",
				"Avatar URL must be 500 characters or less")
			return
		}
	}
	// Ceiling values outside the allowed set are dropped, not rejected; the
	// rest of the update still applies.
	if req.MaxAgeRating != nil && !agegate.IsAllowedCeiling(*req.MaxAgeRating) {
		req.MaxAgeRating = nil
	}

	if req.Name != nil {
		if _, err := db.ExecContext(r.Context(),
			`UPDATE users SET name = $1 WHERE id = $2`, *req.Name, userID); err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not update profile")
			return
		}
	}
	if req.AvatarURL != nil {
		if _, err := db.ExecContext(r.Context(),
			`UPDATE users SET avatar_url = $1 WHERE id = $2`, *req.AvatarURL, userID); err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not update profile")
			return
		}
	}
	if req.MaxAgeRating != nil {
		if _, err := db.ExecContext(r.Context(),
			`UPDATE users SET max_age_rating = $1 WHERE id = $2`, *req.MaxAgeRating, userID); err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not update profile")
			return
		}
	} else if req.ClearCeiling {
		if _, err := db.ExecContext(r.Context(),
			`UPDATE users SET max_age_rating = NULL WHERE id = $1`, userID); err != nil {
			auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not update profile")
			return
		}
	}

	// Reload and reissue the session cookie so claims match the new profile.
	var u userInfo
	var maxAge sql.NullInt64
	err := db.QueryRowContext(r.Context(), `
		SELECT id, email, name, avatar_url, plan, max_age_rating, email_verified
		FROM users WHERE id = $1
	`, userID).Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.Plan, &maxAge, &u.EmailVerified)
	if err != nil {
		auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not load profile")
		return
	}
	u.MaxAgeRating = nullableInt(maxAge)

	if token, err := auth.GenerateSessionToken(u.ID, u.Email, u.Name, u.Plan, u.MaxAgeRating, u.EmailVerified); err == nil {
		auth.SetSessionCookie(w, token, sessionTTL)
	}

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": u})
}
