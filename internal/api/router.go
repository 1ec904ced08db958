package api

import (
	"time"

	"finanzas-chat/docs"
	"finanzas-chat/internal/api/handlers"
	"finanzas-chat/pkg/config"
	"finanzas-chat/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	cfg *config.ServerConfig,
	chatHandler *handlers.ChatHandler,
	expenseHandler *handlers.ExpenseHandler,
	reportHandler *handlers.ReportHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	// Swagger: importing docs registers the API description through init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api/v1")

	chat := []fiber.Handler{}
	if cfg.ChatRateLimit > 0 {
		chat = append(chat, limiter.New(limiter.Config{
			Max:        cfg.ChatRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many messages, try again in a minute",
				})
			},
		}))
	}
	chat = append(chat, chatHandler.SendMessage)
	api.Post("/chat", chat...)
	api.Get("/messages", chatHandler.ListMessages)

	expenses := api.Group("/expenses")
	expenses.Get("", expenseHandler.ListExpenses)
	expenses.Get("/export", expenseHandler.ExportExpenses)

	api.Get("/reports/summary", reportHandler.GetSummary)
	api.Get("/categories", reportHandler.ListCategories)

	return app
}
