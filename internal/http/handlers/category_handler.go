package handlers

import (
	"net/url"

	applog "housingbuddy/internal/log"
	"housingbuddy/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.List(c.UserContext(), sessionID(c))
	if err != nil {
		return fail(c, "category.list.fail", err)
	}
	return c.JSON(fiber.Map{"categories": cats, "defaults": services.DefaultCategories})
}

// POST /api/categories
func (h *CategoryHandler) Add(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	cats, err := h.Categories.Add(c.UserContext(), sessionID(c), in.Name)
	if err != nil {
		return fail(c, "category.add.fail", err)
	}
	applog.Info(c, "category.add", map[string]any{"name": in.Name})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"categories": cats})
}

// DELETE /api/categories/:name
func (h *CategoryHandler) Remove(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badRequest(c, "name", "malformed category name")
	}
	cats, err := h.Categories.Remove(c.UserContext(), sessionID(c), name)
	if err != nil {
		return fail(c, "category.remove.fail", err)
	}
	applog.Info(c, "category.remove", map[string]any{"name": name})
	return c.JSON(fiber.Map{"categories": cats})
}
