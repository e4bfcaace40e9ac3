package handlers

import (
	"housingbuddy/internal/domain"
	applog "housingbuddy/internal/log"
	"housingbuddy/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ensureSID(c *fiber.Ctx, secure bool) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   secure,
		})
		// Visible to the rest of this request, which has no cookie yet.
		c.Request().Header.SetCookie("sid", sid)
	}
	return sid
}

// Session attaches the browser session to the request: the sid, the
// logged-in user and the admin flag. An admin flag left over next to a
// user login is dropped, so the two never coexist.
func Session(auth *services.AuthService, gate *services.AdminGate, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ensureSID(c, secure)
		c.Locals("sid", sid)

		admin := gate.IsAdmin(c.UserContext(), sid)
		if u, err := auth.CurrentUser(sid); err == nil && u != nil {
			c.Locals("user", u)
			if admin {
				if err := gate.Logout(c.UserContext(), sid); err != nil {
					applog.Error(c, "admin.flag.clear.fail", err, nil)
				}
				admin = false
			}
		}
		c.Locals("admin", admin)
		return c.Next()
	}
}

// RequireUser rejects requests without a logged-in user.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			applog.Security(c, "access.denied.user", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrUnauthenticated.Error()})
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests from sessions not in admin mode. Client
// supplied headers are never consulted.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": services.ErrForbidden.Error()})
		}
		return c.Next()
	}
}

func sessionID(c *fiber.Ctx) string {
	if sid, ok := c.Locals("sid").(string); ok {
		return sid
	}
	return c.Cookies("sid")
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func isAdmin(c *fiber.Ctx) bool {
	a, _ := c.Locals("admin").(bool)
	return a
}

func viewer(c *fiber.Ctx) services.Viewer {
	v := services.Viewer{Admin: isAdmin(c)}
	if u := currentUser(c); u != nil {
		v.UserID, v.Name = u.ID, u.Name
	}
	return v
}
