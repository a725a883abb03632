package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/api/dto"
	"github.com/spec-kit/concert-frontend/internal/domain"
)

// AuthAPI covers the /auth endpoints.
type AuthAPI struct {
	c *Client
}

// Login authenticates and stores the returned access token, if any.
func (a *AuthAPI) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	return a.authenticate(ctx, loginPath, req)
}

// Register creates an account and stores the returned access token, if any.
func (a *AuthAPI) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	return a.authenticate(ctx, registerPath, req)
}

func (a *AuthAPI) authenticate(ctx context.Context, path string, body any) (*dto.AuthResponse, error) {
	res, err := required[dto.AuthResponse](ctx, a.c, path, RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, err
	}
	if res.AccessToken != "" {
		if err := a.c.tokens.Set(ctx, res.AccessToken); err != nil {
			return res, fmt.Errorf("store access token: %w", err)
		}
	}
	return res, nil
}

// Logout notifies the backend and clears the local token. The remote call's
// failure is logged and never prevents the local removal.
func (a *AuthAPI) Logout(ctx context.Context) error {
	if _, err := Do[json.RawMessage](ctx, a.c, logoutPath, RequestOptions{Method: http.MethodPost}); err != nil {
		a.c.logger.Warn("remote logout failed", zap.Error(err))
	}
	return a.c.tokens.Remove(context.WithoutCancel(ctx))
}

// GetMe returns the user behind the stored token.
func (a *AuthAPI) GetMe(ctx context.Context) (*domain.User, error) {
	return required[domain.User](ctx, a.c, mePath, RequestOptions{})
}
