package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/api/dto"
	"github.com/spec-kit/concert-frontend/internal/apiclient"
	"github.com/spec-kit/concert-frontend/internal/domain"
	"github.com/spec-kit/concert-frontend/internal/events"
)

// SessionService tracks the signed-in user on top of the client's token.
type SessionService struct {
	client     *apiclient.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu   sync.RWMutex
	user *domain.User
}

// NewSessionService builds the service and clears the cached user whenever
// the client reports an expired session.
func NewSessionService(client *apiclient.Client, dispatcher events.Dispatcher, logger *zap.Logger) *SessionService {
	s := &SessionService{client: client, dispatcher: dispatcher, logger: logger}
	dispatcher.Subscribe(events.EventSessionExpired, func(context.Context, events.Event) error {
		s.setUser(nil)
		return nil
	})
	return s
}

// SessionExpiredPublisher adapts the dispatcher to the client's expiry hook.
func SessionExpiredPublisher(dispatcher events.Dispatcher, logger *zap.Logger) func(context.Context) {
	return func(ctx context.Context) {
		if err := dispatcher.Publish(ctx, events.Event{Type: events.EventSessionExpired}); err != nil {
			logger.Warn("session expired handlers failed", zap.Error(err))
		}
	}
}

// Restore loads the user behind a stored token. Without a token it returns
// nil. Any failure discards the token.
func (s *SessionService) Restore(ctx context.Context) (*domain.User, error) {
	if _, ok := s.client.Tokens().Get(ctx); !ok {
		return nil, nil
	}
	user, err := s.client.Auth.GetMe(ctx)
	if err != nil {
		if rmErr := s.client.Tokens().Remove(context.WithoutCancel(ctx)); rmErr != nil {
			s.logger.Warn("discard token failed", zap.Error(rmErr))
		}
		s.setUser(nil)
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// Login signs in and publishes session_started.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	res, err := s.client.Auth.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.started(ctx, res.User), nil
}

// Register creates an account, signs in and publishes session_started.
func (s *SessionService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	res, err := s.client.Auth.Register(ctx, dto.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, err
	}
	return s.started(ctx, res.User), nil
}

// Logout always ends the local session and publishes session_ended.
func (s *SessionService) Logout(ctx context.Context) error {
	prev := s.Current()
	err := s.client.Auth.Logout(ctx)
	s.setUser(nil)
	if pubErr := s.dispatcher.Publish(ctx, events.Event{Type: events.EventSessionEnded, User: prev}); pubErr != nil {
		s.logger.Warn("session ended handlers failed", zap.Error(pubErr))
	}
	return err
}

// Current returns the cached user, nil when signed out.
func (s *SessionService) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *SessionService) started(ctx context.Context, user domain.User) *domain.User {
	u := user
	s.setUser(&u)
	if err := s.dispatcher.Publish(ctx, events.Event{Type: events.EventSessionStarted, User: &u}); err != nil {
		s.logger.Warn("session started handlers failed", zap.Error(err))
	}
	return &u
}

func (s *SessionService) setUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}
