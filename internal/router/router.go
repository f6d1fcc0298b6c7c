package router

import (
	"path/filepath"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"go.uber.org/zap"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/handler"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/logger"
)

// New wires the fiber app: API routes, queue monitor, static front end.
func New(h *handler.Handler, staticDir, redisAddr string) *fiber.App {
	app := fiber.New()

	app.Use(cors.New())
	app.Use(requestLogger())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Asynqmon web UI for the import queue
	mon := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitor",
		RedisConnOpt: asynq.RedisClientOpt{Addr: redisAddr},
	})
	app.Use("/monitor", adaptor.HTTPHandler(mon))

	app.Get("/api/stock", h.GetStock)
	app.Post("/api/stock", h.SetStock)
	app.Get("/api/customers", h.ListCustomers)
	app.Post("/api/customers", h.CreateCustomer)
	app.Get("/api/transactions", h.ListTransactions)
	app.Post("/api/transactions", h.CreateTransaction)
	app.Post("/api/transactions/import", h.ImportTransactions)

	app.Static("/", staticDir)

	// SPA fallback: any other GET serves the front-end entry document
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(staticDir, "index.html"))
	})

	return app
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.L().Info("request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}
