package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/velorahq/velora-backend/internal/config"
	"github.com/velorahq/velora-backend/internal/handlers"
	"github.com/velorahq/velora-backend/internal/middleware"
)

// Handlers bundles everything Setup wires into the route table.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Profile      *handlers.ProfileHandler
	Appointments *handlers.AppointmentHandler
	Products     *handlers.ProductHandler
	Orders       *handlers.OrderHandler
	Messages     *handlers.MessageHandler
	Coins        *handlers.CoinHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Public catalog browsing
	api.Get("/products", h.Products.ListActive)
	api.Get("/products/:id", h.Products.Get)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// Protected routes (JWT required)
	jwt := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", jwt, h.Auth.Logout)

	api.Get("/profile", jwt, h.Profile.Get)
	api.Put("/profile", jwt, h.Profile.Update)

	api.Get("/appointments", jwt, h.Appointments.ListOwn)
	api.Post("/appointments", jwt, h.Appointments.Book)

	api.Post("/orders", jwt, h.Orders.Place)
	api.Get("/orders", jwt, h.Orders.ListOwn)
	api.Get("/orders/:id", jwt, h.Orders.GetOwn)

	api.Post("/messages", jwt, h.Messages.Send)
	api.Get("/messages", jwt, h.Messages.ListOwn)
	api.Put("/messages/:id/read", jwt, h.Messages.MarkRead)

	api.Get("/coins/transactions", jwt, h.Coins.ListOwnTransactions)

	// Admin panel (JWT + admin gate)
	admin := api.Group("/admin", jwt, middleware.AdminRequired(db, cfg))
	admin.Get("/appointments", h.Appointments.ListAll)
	admin.Put("/appointments/:id/status", h.Appointments.SetStatus)

	admin.Get("/products", h.Products.ListAll)
	admin.Post("/products", h.Products.Create)
	admin.Patch("/products/:id", h.Products.Update)

	admin.Get("/orders", h.Orders.ListAll)

	admin.Get("/messages", h.Messages.ListAll)
	admin.Post("/messages", h.Messages.Reply)
	admin.Put("/messages/:id/read", h.Messages.MarkReadAdmin)

	admin.Post("/coins/adjust", h.Coins.Adjust)
	admin.Get("/coins/:user_id", h.Coins.Reconcile)
}
