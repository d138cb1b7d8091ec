// Package admin serves the operational endpoints (health, metrics) each
// adapter exposes next to its MCP listener.
package admin

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Check reports the health of one dependency. A nil error counts as healthy.
type Check func(ctx context.Context) error

// Server is a small fiber app with /health and /metrics.
type Server struct {
	app    *fiber.App
	logger *zap.Logger
	addr   string
}

// New builds the admin server. checks are probed on every /health request.
func New(logger *zap.Logger, service, addr string, checks map[string]Check) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		code := fiber.StatusOK
		results := map[string]string{}

		for name, check := range checks {
			if err := check(c.Context()); err != nil {
				results[name] = err.Error()
				status = "degraded"
				code = fiber.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		return c.Status(code).JSON(fiber.Map{
			"service": service,
			"status":  status,
			"checks":  results,
		})
	})

	return &Server{app: app, logger: logger, addr: addr}
}

// Start serves until Shutdown is called. Meant to run in its own goroutine.
func (s *Server) Start() {
	s.logger.Info("admin.listening", zap.String("addr", s.addr))
	if err := s.app.Listen(s.addr); err != nil {
		s.logger.Warn("admin.listen_failed", zap.Error(err))
	}
}

// Shutdown stops the admin listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
