package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/concert-frontend/internal/api/http/handlers"
	"github.com/spec-kit/concert-frontend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Proxy    *handlers.ProxyHandler
	Gate     *auth.RouteGate
	Gatherer prometheus.Gatherer
	// WebRoot is the directory of built pages; empty disables page serving.
	WebRoot string
}

// RegisterRoutes wires HTTP routes. Probes, metrics and the API proxy bypass
// the route gate; every other path is a page.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	app.All("/api", cfg.Proxy.Forward)
	app.All("/api/*", cfg.Proxy.Forward)

	app.Use(cfg.Gate.Handle)

	if cfg.WebRoot == "" {
		return
	}
	app.Static("/", cfg.WebRoot)
	index := filepath.Join(cfg.WebRoot, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
}
