package handlers

import (
	applog "housingbuddy/internal/log"
	"housingbuddy/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Gate  *services.AdminGate
	Props *services.PropertyService
}

// POST /api/admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	ok, err := h.Gate.Login(c.UserContext(), sessionID(c), in.Password)
	if err != nil {
		return fail(c, "admin.login.fail", err)
	}
	if !ok {
		applog.Security(c, "admin.login.fail", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid admin credential", "isAdmin": false})
	}
	c.Locals("user", nil)
	c.Locals("admin", true)
	applog.Audit(c, "admin.login", nil)
	return c.JSON(fiber.Map{"isAdmin": true})
}

// POST /api/admin/logout
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if err := h.Gate.Logout(c.UserContext(), sessionID(c)); err != nil {
		return fail(c, "admin.logout.fail", err)
	}
	applog.Audit(c, "admin.logout", nil)
	c.Locals("admin", false)
	return c.JSON(fiber.Map{"isAdmin": false})
}

// GET /api/admin/status
func (h *AdminHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"isAdmin": isAdmin(c)})
}

// GET /api/trash
func (h *AdminHandler) Trash(c *fiber.Ctx) error {
	props, err := h.Props.Trash()
	if err != nil {
		return fail(c, "trash.list.fail", err)
	}
	return c.JSON(fiber.Map{"properties": props})
}

// POST /api/trash/:id/restore
func (h *AdminHandler) Restore(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	if err := h.Props.Restore(id); err != nil {
		return fail(c, "property.restore.fail", err)
	}
	applog.Audit(c, "property.restore", map[string]any{"property": id})
	return c.JSON(fiber.Map{"ok": true})
}

// DELETE /api/trash/:id
func (h *AdminHandler) Purge(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	if err := h.Props.Purge(id); err != nil {
		return fail(c, "property.purge.fail", err)
	}
	applog.Audit(c, "property.purge", map[string]any{"property": id})
	return c.JSON(fiber.Map{"ok": true})
}
