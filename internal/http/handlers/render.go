package handlers

import (
	"housingbuddy/internal/overlay"

	"github.com/gofiber/fiber/v2"
)

// render injects the session context every page needs: the user, admin
// mode, the overlay state and a resolver bound to this session.
func render(c *fiber.Ctx, s *overlay.Session, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := currentUser(c); u != nil {
		data["User"] = u
	}
	data["IsAdmin"] = isAdmin(c)
	if s != nil {
		data["Lang"] = s.State()
		data["UI"] = s.ResolveAll(overlay.UICatalog)
		data["T"] = s.Resolve
	} else {
		data["UI"] = overlay.UICatalog
		data["T"] = func(original, _ string) string { return original }
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// notFound renders the full-page not-found view.
func notFound(c *fiber.Ctx, s *overlay.Session) error {
	c.Status(fiber.StatusNotFound)
	return render(c, s, "notfound", nil)
}
