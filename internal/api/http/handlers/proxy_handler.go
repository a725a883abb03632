package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/concert-frontend/pkg/util/errorutil"
)

const apiPrefix = "/api"

// ProxyHandler forwards /api requests to the backend with the prefix removed.
type ProxyHandler struct {
	backendURL string
	logger     *zap.Logger
}

// NewProxyHandler returns a handler forwarding to backendURL.
func NewProxyHandler(backendURL string, logger *zap.Logger) *ProxyHandler {
	return &ProxyHandler{backendURL: strings.TrimRight(backendURL, "/"), logger: logger}
}

// Forward relays the request, including method, headers, body and query.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	target := h.backendURL + rewrite(c.OriginalURL())
	if err := proxy.Do(c, target); err != nil {
		h.logger.Warn("proxy failed", zap.String("target", target), zap.Error(err))
		return apperrors.NewBadGateway(err)
	}
	c.Response().Header.Del(fiber.HeaderServer)
	return nil
}

// rewrite strips the /api prefix: /api/events?page=2 becomes /events?page=2.
func rewrite(uri string) string {
	rest := strings.TrimPrefix(uri, apiPrefix)
	if rest == "" || rest[0] == '?' {
		return "/" + rest
	}
	return rest
}
