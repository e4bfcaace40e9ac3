package handlers

import (
	applog "housingbuddy/internal/log"
	"housingbuddy/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	Comments *services.CommentService
}

// GET /api/properties/:id/comments
func (h *CommentHandler) List(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	cs, err := h.Comments.List(id, viewer(c))
	if err != nil {
		return fail(c, "comment.list.fail", err)
	}
	return c.JSON(fiber.Map{"comments": cs})
}

// POST /api/properties/:id/comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	var in services.CommentInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	v, err := h.Comments.Create(id, viewer(c), in)
	if err != nil {
		return fail(c, "comment.create.fail", err)
	}
	applog.Audit(c, "comment.create", map[string]any{"property": id, "comment": v.ID, "admin_only": v.IsAdminOnly})
	return c.Status(fiber.StatusCreated).JSON(v)
}

// PUT /api/comments/:id
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	var in services.CommentPatch
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	v, err := h.Comments.Update(id, viewer(c), in)
	if err != nil {
		return fail(c, "comment.update.fail", err)
	}
	applog.Audit(c, "comment.update", map[string]any{"comment": id})
	return c.JSON(v)
}

// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	if err := h.Comments.Delete(id, viewer(c)); err != nil {
		return fail(c, "comment.delete.fail", err)
	}
	applog.Audit(c, "comment.delete", map[string]any{"comment": id})
	return c.JSON(fiber.Map{"ok": true})
}
