package handlers

import (
	"time"

	applog "housingbuddy/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Mount registers the session middleware and every route.
func Mount(app fiber.Router, d *Deps) {
	app.Use(Session(d.Auth, d.Gate, d.CookieSecure))

	// Pages
	app.Get("/", d.PageHandler.Home)
	app.Get("/p/:id", d.PageHandler.Property)

	api := app.Group("/api")

	// Properties
	api.Get("/properties", d.PropertyHandler.List)
	api.Get("/properties/:id", d.PropertyHandler.Get)
	api.Post("/properties", RequireAdmin(), d.PropertyHandler.Create)
	api.Put("/properties/:id", RequireAdmin(), d.PropertyHandler.Update)
	api.Delete("/properties/:id", RequireAdmin(), d.PropertyHandler.Delete)

	// Trash
	trash := api.Group("/trash", RequireAdmin())
	trash.Get("/", d.AdminHandler.Trash)
	trash.Post("/:id/restore", d.AdminHandler.Restore)
	trash.Delete("/:id", d.AdminHandler.Purge)

	// Comments
	api.Get("/properties/:id/comments", d.CommentHandler.List)
	api.Post("/properties/:id/comments", RequireUser(), d.CommentHandler.Create)
	api.Put("/comments/:id", d.CommentHandler.Update)
	api.Delete("/comments/:id", d.CommentHandler.Delete)

	// Favorites
	fav := api.Group("/favorites", RequireUser())
	fav.Get("/", d.FavoriteHandler.List)
	fav.Get("/:propertyId/status", d.FavoriteHandler.Status)
	fav.Post("/:propertyId", d.FavoriteHandler.Add)
	fav.Delete("/:propertyId", d.FavoriteHandler.Remove)

	// Auth (login throttled)
	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	})
	api.Post("/auth/register", loginLimiter, d.AuthHandler.Register)
	api.Post("/auth/login", loginLimiter, d.AuthHandler.Login)
	api.Post("/auth/logout", d.AuthHandler.Logout)
	api.Get("/auth/me", d.AuthHandler.Me)
	api.Get("/auth/verify", d.AuthHandler.Verify)
	api.Post("/auth/resend-verification", loginLimiter, d.AuthHandler.ResendVerification)

	// Admin mode
	api.Post("/admin/login", loginLimiter, d.AdminHandler.Login)
	api.Post("/admin/logout", d.AdminHandler.Logout)
	api.Get("/admin/status", d.AdminHandler.Status)

	// Translation
	translateLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|translate"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.translate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Post("/translate", translateLimiter, d.TranslateHandler.Translate)
	api.Get("/lang", d.TranslateHandler.State)
	api.Post("/lang", translateLimiter, d.TranslateHandler.Select)
	api.Post("/resolve", d.TranslateHandler.Resolve)
	api.Get("/i18n", d.TranslateHandler.Catalog)

	// Categories
	api.Get("/categories", d.CategoryHandler.List)
	api.Post("/categories", d.CategoryHandler.Add)
	api.Delete("/categories/:name", d.CategoryHandler.Remove)
}
