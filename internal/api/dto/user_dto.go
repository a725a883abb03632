package dto

import "github.com/spec-kit/concert-frontend/internal/domain"

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

// AuthResponse is returned by login and register. AccessToken is empty when
// the backend only sets its own session cookie.
type AuthResponse struct {
	User        domain.User `json:"user"`
	AccessToken string      `json:"accessToken,omitempty"`
}
