package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jalanma/jalanma-backend/internal/config"
	"github.com/jalanma/jalanma-backend/internal/handlers"
	"github.com/jalanma/jalanma-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	uploadHandler *handlers.UploadHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Session endpoints (JWT required) - apply middleware to individual routes
	// so the public routes above stay unaffected
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Reports — intentionally public: creation carries its own user_id and
	// updates perform no ownership check, matching the observed behavior
	api.Post("/reports", reportHandler.CreateReport)
	api.Get("/reports", reportHandler.ListReports)
	api.Get("/reports/:id", reportHandler.GetReport)
	api.Patch("/reports/:id", reportHandler.UpdateReport)
	api.Get("/users/:id/reports", reportHandler.ListUserReports)

	// Photo upload (multipart)
	api.Post("/uploads/photo", uploadHandler.UploadPhoto)
}
