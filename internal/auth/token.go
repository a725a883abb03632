package auth

import (
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/concert-frontend/internal/domain"
)

// Claims is the subset of the backend's access token payload the frontend
// looks at.
type Claims struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// PeekClaims decodes a JWT without verifying its signature. The backend
// remains the authority; the result only drives routing decisions.
func PeekClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Usable reports whether a cookie token should count as a session at now.
// Opaque tokens are usable; a JWT-shaped token must decode and, when it
// carries exp, be unexpired.
func Usable(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	if strings.Count(token, ".") != 2 {
		return true
	}
	claims, err := PeekClaims(token)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}
