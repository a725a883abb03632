// Package apiclient is the single point of contact with the booking backend.
// It attaches the stored bearer token, normalizes failures into *APIError and
// purges the token when the backend reports an expired session.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/config"
	"github.com/spec-kit/concert-frontend/internal/observability"
	"github.com/spec-kit/concert-frontend/internal/tokenstore"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	logoutPath   = "/auth/logout"
	mePath       = "/auth/me"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client issues requests against the backend API.
type Client struct {
	baseURL          string
	http             *http.Client
	tokens           *tokenstore.Store
	logger           *zap.Logger
	metrics          *observability.Metrics
	onSessionExpired func(ctx context.Context)

	Auth     *AuthAPI
	Events   *EventsAPI
	Bookings *BookingsAPI
}

// Dependencies bundles collaborators for the client. Only Tokens is required.
type Dependencies struct {
	Tokens     *tokenstore.Store
	HTTPClient *http.Client
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	// OnSessionExpired runs after a 401 purged the token.
	OnSessionExpired func(ctx context.Context)
}

// RequestOptions overrides the method, body and headers of a request.
// Headers named here replace the client defaults of the same name; an empty
// value list removes the header.
type RequestOptions struct {
	Method string
	Body   any
	Header http.Header
}

// New builds a client. No timeout is configured; callers bound requests
// through their context.
func New(cfg config.APIConfig, deps Dependencies) *Client {
	hc := deps.HTTPClient
	if hc == nil {
		hc = &http.Client{Jar: deps.Tokens.Jar()}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		http:             hc,
		tokens:           deps.Tokens,
		logger:           logger,
		metrics:          deps.Metrics,
		onSessionExpired: deps.OnSessionExpired,
	}
	c.Auth = &AuthAPI{c: c}
	c.Events = &EventsAPI{c: c}
	c.Bookings = &BookingsAPI{c: c}
	return c
}

// Tokens exposes the token store the client reads from.
func (c *Client) Tokens() *tokenstore.Store {
	return c.tokens
}

// Do sends a request to endpoint and decodes the JSON response into T. A 204
// or an empty body yields a nil result.
func Do[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (*T, error) {
	out, _, err := do[T](ctx, c, endpoint, opts)
	return out, err
}

func do[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (*T, int, error) {
	data, status, err := c.send(ctx, endpoint, opts)
	if err != nil {
		return nil, status, err
	}
	if data == nil {
		return nil, status, nil
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, status, &APIError{
			Message: GenericMessage,
			Status:  status,
			Err:     fmt.Errorf("decode %s: %w", endpoint, err),
		}
	}
	return &out, status, nil
}

// required turns an empty success response into an error for operations
// whose callers need a value.
func required[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (*T, error) {
	out, status, err := do[T](ctx, c, endpoint, opts)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &APIError{
			Message: GenericMessage,
			Status:  status,
			Err:     fmt.Errorf("%s: %w", endpoint, ErrEmptyResponse),
		}
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, endpoint string, opts RequestOptions) ([]byte, int, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build %s request: %w", endpoint, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if token, ok := c.tokens.Get(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range opts.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, c.transportFailure(endpoint, method, requestID, start, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, c.transportFailure(endpoint, method, requestID, start, err)
	}

	elapsed := time.Since(start)
	c.metrics.RecordClientRequest(endpoint, method, resp.StatusCode, elapsed)
	c.logger.Debug("api request",
		zap.String("endpoint", endpoint),
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", elapsed))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordClientError(endpoint, method, "http")
		return nil, resp.StatusCode, c.httpFailure(ctx, endpoint, resp.StatusCode, data)
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, resp.StatusCode, nil
	}
	return data, resp.StatusCode, nil
}

func (c *Client) transportFailure(endpoint, method, requestID string, start time.Time, err error) error {
	c.metrics.RecordClientRequest(endpoint, method, 0, time.Since(start))
	c.metrics.RecordClientError(endpoint, method, "transport")
	c.logger.Warn("api request failed",
		zap.String("endpoint", endpoint),
		zap.String("method", method),
		zap.String("request_id", requestID),
		zap.Error(err))
	return &APIError{Message: ConnectionFailedMessage, Status: 0, Err: err}
}

func (c *Client) httpFailure(ctx context.Context, endpoint string, status int, body []byte) error {
	apiErr := &APIError{Message: messageFromBody(body, status), Status: status}
	if status != http.StatusUnauthorized {
		return apiErr
	}

	path := pathOf(endpoint)
	if path == loginPath || path == registerPath {
		return apiErr
	}

	apiErr.sessionExpired = true
	purgeCtx := context.WithoutCancel(ctx)
	if err := c.tokens.Remove(purgeCtx); err != nil {
		c.logger.Warn("token purge failed", zap.String("endpoint", endpoint), zap.Error(err))
	} else {
		c.logger.Info("session expired; token purged", zap.String("endpoint", endpoint))
	}
	if path != logoutPath && c.onSessionExpired != nil {
		c.onSessionExpired(purgeCtx)
	}
	return apiErr
}

func pathOf(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
