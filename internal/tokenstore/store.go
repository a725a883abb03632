// Package tokenstore keeps the bearer token in a durable backend and mirrors
// it into an access_token cookie readable by the edge route gate.
//
// The two writes are not atomic. A failed durable write leaves the cookie
// untouched; a failed durable delete still clears the cookie.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Key names the token in the durable backend and the cookie.
const Key = "access_token"

// DefaultCookieMaxAge caps the lifetime of the mirrored cookie.
const DefaultCookieMaxAge = 24 * time.Hour

// ErrNotFound is returned by backends when nothing is stored under a key.
var ErrNotFound = errors.New("token not found")

// Backend is the durable half of the store. Delete of a missing key must
// succeed.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Options configures the cookie half of the store.
type Options struct {
	// Origin is the frontend origin the cookie is scoped to.
	Origin string
	MaxAge time.Duration
	// Jar receives the cookie. A fresh jar is created when nil.
	Jar    http.CookieJar
	Logger *zap.Logger
}

// Store is the dual durable+cookie token store.
type Store struct {
	backend Backend
	jar     http.CookieJar
	origin  *url.URL
	maxAge  time.Duration
	logger  *zap.Logger
}

// New builds a store and re-mirrors a token already held by the backend into
// the cookie jar.
func New(ctx context.Context, backend Backend, opts Options) (*Store, error) {
	if backend == nil {
		return nil, errors.New("tokenstore: backend is required")
	}
	origin, err := url.Parse(opts.Origin)
	if err != nil {
		return nil, fmt.Errorf("tokenstore: parse origin: %w", err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("tokenstore: origin %q must be absolute", opts.Origin)
	}

	jar := opts.Jar
	if jar == nil {
		jar, err = cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("tokenstore: cookie jar: %w", err)
		}
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultCookieMaxAge
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{backend: backend, jar: jar, origin: origin, maxAge: maxAge, logger: logger}
	if token, ok := s.Get(ctx); ok {
		s.writeCookie(token)
	}
	return s, nil
}

// Get returns the stored token. A nil store, an empty value or a backend
// failure all read as absent.
func (s *Store) Get(ctx context.Context) (string, bool) {
	if s == nil || s.backend == nil {
		return "", false
	}
	token, err := s.backend.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("token read failed", zap.Error(err))
		}
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

// Set persists token and mirrors it into the cookie.
func (s *Store) Set(ctx context.Context, token string) error {
	if s == nil {
		return errors.New("tokenstore: store not initialized")
	}
	if token == "" {
		return errors.New("tokenstore: empty token")
	}
	if err := s.backend.Put(ctx, Key, token); err != nil {
		return fmt.Errorf("tokenstore: put: %w", err)
	}
	s.writeCookie(token)
	return nil
}

// Remove deletes the token from both stores. Removing an absent token is a
// no-op.
func (s *Store) Remove(ctx context.Context) error {
	if s == nil {
		return nil
	}
	err := s.backend.Delete(ctx, Key)
	s.clearCookie()
	if err != nil {
		return fmt.Errorf("tokenstore: delete: %w", err)
	}
	return nil
}

// Jar exposes the cookie jar so HTTP clients talking to the frontend origin
// send the mirrored cookie.
func (s *Store) Jar() http.CookieJar {
	if s == nil {
		return nil
	}
	return s.jar
}

// CookieValue returns the mirrored cookie as the jar would send it.
func (s *Store) CookieValue() (string, bool) {
	if s == nil {
		return "", false
	}
	for _, c := range s.jar.Cookies(s.origin) {
		if c.Name == Key && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

func (s *Store) writeCookie(token string) {
	s.jar.SetCookies(s.origin, []*http.Cookie{{
		Name:     Key,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.maxAge / time.Second),
		Secure:   s.origin.Scheme == "https",
		SameSite: http.SameSiteLaxMode,
	}})
}

func (s *Store) clearCookie() {
	s.jar.SetCookies(s.origin, []*http.Cookie{{
		Name:     Key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.origin.Scheme == "https",
		SameSite: http.SameSiteLaxMode,
	}})
}
