package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/auth"
	"github.com/spec-kit/concert-frontend/internal/events"
)

// Navigator moves the user to another page or screen.
type Navigator interface {
	Navigate(ctx context.Context, path, reason string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path, reason string)

func (f NavigatorFunc) Navigate(ctx context.Context, path, reason string) {
	f(ctx, path, reason)
}

// NavigationService reacts to session and booking events: it sends signed-out
// users to the login page and logs booking notices.
type NavigationService struct {
	dispatcher events.Dispatcher
	navigator  Navigator
	logger     *zap.Logger
}

// NewNavigationService creates the service.
func NewNavigationService(dispatcher events.Dispatcher, navigator Navigator, logger *zap.Logger) *NavigationService {
	return &NavigationService{
		dispatcher: dispatcher,
		navigator:  navigator,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NavigationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSessionExpired, n.handleSessionExpired)
	n.dispatcher.Subscribe(events.EventSessionEnded, n.handleSessionEnded)
	n.dispatcher.Subscribe(events.EventBookingCreated, n.handleBooking)
	n.dispatcher.Subscribe(events.EventBookingCancelled, n.handleBooking)
}

func (n *NavigationService) handleSessionExpired(ctx context.Context, event events.Event) error {
	n.logger.Info("SessionExpired", zap.String("event_id", event.ID))
	n.navigate(ctx, "session expired")
	return nil
}

func (n *NavigationService) handleSessionEnded(ctx context.Context, event events.Event) error {
	n.logger.Info("SessionEnded", zap.String("event_id", event.ID))
	n.navigate(ctx, "signed out")
	return nil
}

func (n *NavigationService) handleBooking(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.Any("payload", event.Payload))
	return nil
}

func (n *NavigationService) navigate(ctx context.Context, reason string) {
	if n.navigator == nil {
		return
	}
	n.navigator.Navigate(ctx, auth.LoginPath, reason)
}
