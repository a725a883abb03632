package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/tokenstore"
)

const claimsKey = "auth_claims"

// RouteGate redirects page requests based on the access_token cookie alone,
// without asking the backend.
type RouteGate struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewRouteGate constructs the gate.
func NewRouteGate(logger *zap.Logger) *RouteGate {
	return &RouteGate{logger: logger, now: time.Now}
}

// Handle sends / to /home, unauthenticated visitors of protected pages to
// /login and signed-in visitors of the auth pages to /home.
func (g *RouteGate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	if path == "/" {
		return c.Redirect(HomePath, fiber.StatusTemporaryRedirect)
	}

	token := c.Cookies(tokenstore.Key)
	signedIn := Usable(token, g.now())
	if token != "" && !signedIn {
		g.logger.Debug("ignoring unusable session cookie", zap.String("path", path))
	}

	switch {
	case matchesAny(path, ProtectedRoutes) && !signedIn:
		return c.Redirect(LoginPath, fiber.StatusTemporaryRedirect)
	case matchesAny(path, AuthRoutes) && signedIn:
		return c.Redirect(HomePath, fiber.StatusTemporaryRedirect)
	}

	if signedIn {
		if claims, err := PeekClaims(token); err == nil {
			c.Locals(claimsKey, claims)
		}
	}
	return c.Next()
}

// ClaimsFromContext returns the peeked claims of a signed-in JWT session.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok
}
