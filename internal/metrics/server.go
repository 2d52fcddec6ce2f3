package metrics

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewApp serves /metrics and /health.
func NewApp(m *Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	})
	app.Use(recover.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   namespace,
			"timestamp": time.Now().Unix(),
		})
	})
	return app
}

// Serve runs the metrics app on addr until ctx is done.
func Serve(ctx context.Context, addr string, m *Metrics, log zerolog.Logger) error {
	app := NewApp(m)
	errc := make(chan error, 1)
	go func() { errc <- app.Listen(addr) }()
	log.Info().Str("addr", addr).Msg("metrics server started")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := app.Shutdown(); err != nil {
			return err
		}
		<-errc
		log.Debug().Msg("metrics server stopped")
		return nil
	}
}
