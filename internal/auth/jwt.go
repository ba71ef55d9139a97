// Package auth provides JWT generation, validation, and password hashing
// for Animax viewer sessions.
package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// Claims represents JWT claims for an Animax viewer session. MaxAgeRating
// is a pointer so "no explicit ceiling" survives the round trip; the
// agegate package resolves nil to its default.
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	Name          string `json:"name"`
	Plan          string `json:"plan"`
	MaxAgeRating  *int   `json:"max_age_rating,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// GenerateSessionToken creates a signed JWT for the given viewer. Sessions
// last one week by default; override with ANIMAX_JWT_EXPIRY (a Go duration).
func GenerateSessionToken(userID, email, name, plan string, maxAgeRating *int, emailVerified bool) (string, error) {
	secret := os.Getenv("ANIMAX_JWT_SECRET")
	if secret == "" {
		return "", errors.New("ANIMAX_JWT_SECRET not set")
	}

	expiry := 7 * 24 * time.Hour
	if v := os.Getenv("ANIMAX_JWT_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			expiry = d
		}
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			Issuer:    "animax",
		},
		Email:         email,
		Name:          name,
		Plan:          plan,
		MaxAgeRating:  maxAgeRating,
		EmailVerified: emailVerified,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken parses and validates a session JWT.
// Returns the parsed claims or an error if the token is invalid/expired.
func ValidateSessionToken(tokenStr string) (*Claims, error) {
	secret := os.Getenv("ANIMAX_JWT_SECRET")
	if secret == "" {
		return nil, errors.New("ANIMAX_JWT_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether the plaintext password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
