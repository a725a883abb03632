package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/apiclient"
	"github.com/spec-kit/concert-frontend/internal/config"
	"github.com/spec-kit/concert-frontend/internal/domain"
	"github.com/spec-kit/concert-frontend/internal/events"
	"github.com/spec-kit/concert-frontend/internal/observability"
	"github.com/spec-kit/concert-frontend/internal/service"
	"github.com/spec-kit/concert-frontend/internal/tokenstore"
)

var (
	errNotSignedIn = errors.New("กรุณาเข้าสู่ระบบ (concertctl login)")
	errAdminOnly   = errors.New("เฉพาะผู้ดูแลระบบเท่านั้น")
)

type app struct {
	out    io.Writer
	errOut io.Writer
	apiURL string

	logger       *zap.Logger
	closeStore   func()
	client       *apiclient.Client
	session      *service.SessionService
	reservations *service.ReservationService
	dashboard    *service.DashboardService
}

func (a *app) init(ctx context.Context, cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}
	if cfg.Logger.Output == "stdout" {
		cfg.Logger.Output = "stderr"
	}

	logger, err := observability.NewLogger(cfg.Logger, "concertctl")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger

	store, closeStore, err := tokenstore.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	a.closeStore = closeStore

	dispatcher := events.NewInMemoryDispatcher()
	a.client = apiclient.New(cfg.API, apiclient.Dependencies{
		Tokens:           store,
		Logger:           logger.Named("apiclient"),
		OnSessionExpired: service.SessionExpiredPublisher(dispatcher, logger),
	})
	a.session = service.NewSessionService(a.client, dispatcher, logger)
	a.reservations = service.NewReservationService(a.client, dispatcher, logger)
	a.dashboard = service.NewDashboardService(a.client)

	service.NewNavigationService(dispatcher, service.NavigatorFunc(a.navigate), logger).RegisterHandlers()
	return nil
}

func (a *app) close() {
	if a.closeStore != nil {
		a.closeStore()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// navigate stands in for a page change: a terminal can only tell the user
// where to go next.
func (a *app) navigate(_ context.Context, path, reason string) {
	if path == "" {
		return
	}
	fmt.Fprintf(a.errOut, "%s: run `concertctl login` to continue\n", reason)
}

func (a *app) requireUser(ctx context.Context) (*domain.User, error) {
	user, err := a.session.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errNotSignedIn
	}
	return user, nil
}

func (a *app) requireAdmin(ctx context.Context) (*domain.User, error) {
	user, err := a.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, errAdminOnly
	}
	return user, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// userMessage prefers the localized message of backend errors.
func userMessage(err error) string {
	if apiErr, ok := apiclient.AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}

func passwordFrom(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONCERT_PASSWORD")
}
