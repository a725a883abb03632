package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/concert-frontend/pkg/util/errorutil"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	backendURL  string
	client      *http.Client
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, backendURL string) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		backendURL:  backendURL,
		client:      &http.Client{},
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness by reaching the backend. Any answer below 500
// counts as reachable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.probeBackend(ctx); err != nil {
		return apperrors.NewServiceUnavailable(map[string]any{"backend": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": fiber.Map{"backend": "ok"},
	})
}

func (h *HealthHandler) probeBackend(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.backendURL, nil)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "backend answered " + http.StatusText(e.code)
}
