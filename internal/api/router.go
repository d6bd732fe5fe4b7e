package api

import (
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp assembles the fiber application: middleware, health and metrics
// endpoints, the account routes and one authorize/callback pair per OAuth
// provider.
func NewApp(accounts *AccountHandler, google, facebook *OAuthHandler, corsOrigins string) *fiber.App {
	app := fiber.New()

	app.Use(otelfiber.Middleware())
	app.Use(PrometheusMiddleware())
	app.Use(cors.New(cors.Config{AllowOrigins: corsOrigins}))
	app.Use(limiter.New(limiter.Config{
		Max:        50,
		Expiration: time.Hour,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "account-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/register", accounts.Register)
	app.Post("/login", accounts.Login)
	app.Post("/change-password", accounts.ChangePassword)

	auth := app.Group("/auth")
	auth.Get("/google", google.Authorize)
	auth.Get("/google/callback", google.Callback)
	auth.Get("/facebook", facebook.Authorize)
	auth.Get("/facebook/callback", facebook.Callback)

	return app
}
