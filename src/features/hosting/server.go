package hosting

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/contre95/musicrescue/src/features/config"
	"github.com/contre95/musicrescue/src/features/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP server for the catalog browser.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server. The /metrics route is only registered
// when a collector is given.
func NewServer(cfg *config.Manager, catalog *Catalog, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "musicrescue",
		DisableStartupMessage: true,
		UnescapePath:          true,
	})

	app.Use(LogAllRequestsMiddleware(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	if collector != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})))
	}

	RegisterRoutes(app, NewHandler(catalog))

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// App exposes the fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
