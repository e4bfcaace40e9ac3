package handlers

import (
	applog "housingbuddy/internal/log"
	"housingbuddy/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler serves the logged-in user's saved properties.
type FavoriteHandler struct {
	Favs *services.FavoriteService
}

// GET /api/favorites
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	favs, err := h.Favs.List(viewer(c).UserID)
	if err != nil {
		return fail(c, "favorite.list.fail", err)
	}
	return c.JSON(fiber.Map{"favorites": favs})
}

// POST /api/favorites/:propertyId
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	id, ok := pathID(c, "propertyId")
	if !ok {
		return badRequest(c, "propertyId", "must be a positive number")
	}
	if err := h.Favs.Add(viewer(c).UserID, id); err != nil {
		return fail(c, "favorite.add.fail", err)
	}
	applog.Info(c, "favorite.add", map[string]any{"property": id})
	return c.JSON(fiber.Map{"favorited": true})
}

// DELETE /api/favorites/:propertyId
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	id, ok := pathID(c, "propertyId")
	if !ok {
		return badRequest(c, "propertyId", "must be a positive number")
	}
	if err := h.Favs.Remove(viewer(c).UserID, id); err != nil {
		return fail(c, "favorite.remove.fail", err)
	}
	applog.Info(c, "favorite.remove", map[string]any{"property": id})
	return c.JSON(fiber.Map{"favorited": false})
}

// GET /api/favorites/:propertyId/status
func (h *FavoriteHandler) Status(c *fiber.Ctx) error {
	id, ok := pathID(c, "propertyId")
	if !ok {
		return badRequest(c, "propertyId", "must be a positive number")
	}
	fav, err := h.Favs.Status(viewer(c).UserID, id)
	if err != nil {
		return fail(c, "favorite.status.fail", err)
	}
	return c.JSON(fiber.Map{"favorited": fav})
}
