package handlers

import (
	"errors"

	"housingbuddy/internal/domain"
	applog "housingbuddy/internal/log"
	"housingbuddy/internal/overlay"
	"housingbuddy/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the server-rendered listing and detail pages.
type PageHandler struct {
	Props    *services.PropertyService
	Comments *services.CommentService
	Overlay  *overlay.Registry
	Orch     *overlay.Orchestrator
}

// GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	s := h.Overlay.Session(c.UserContext(), sessionID(c))
	q := services.ListQuery{
		Category: c.Query("category"),
		Q:        c.Query("q"),
		Page:     c.QueryInt("page", 1),
		PageSize: 50,
	}
	if field, _ := checkFilter(&q); field != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		c.Status(fiber.StatusBadRequest)
		return render(c, s, "home", fiber.Map{"Properties": []propertyView{}})
	}
	props, err := h.Props.List(q)
	if err != nil {
		return err
	}
	views := make([]propertyView, 0, len(props))
	for _, p := range props {
		views = append(views, display(s, p))
	}
	return render(c, s, "home", fiber.Map{"Properties": views, "Category": q.Category, "Q": q.Q})
}

// GET /p/:id
func (h *PageHandler) Property(c *fiber.Ctx) error {
	s := h.Overlay.Session(c.UserContext(), sessionID(c))
	id, ok := pathID(c, "id")
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "property"})
		return notFound(c, s)
	}
	p, err := h.Props.Get(id)
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, s)
	}
	if err != nil {
		return err
	}
	if err := h.Orch.TranslateFields(c.UserContext(), s, services.PropertyItems(p)); err != nil {
		applog.Error(c, "translate.fields.fail", err, map[string]any{"property": id})
	}
	comments, err := h.Comments.List(id, viewer(c))
	if err != nil {
		return err
	}
	return render(c, s, "property", fiber.Map{
		"P":        display(s, p),
		"Fee":      maintenanceLabel(p),
		"Comments": comments,
	})
}

// maintenanceLabel distinguishes an unknown fee from no fee.
func maintenanceLabel(p domain.Property) string {
	switch {
	case p.MaintenanceFee == nil:
		return "maintenanceUnknown"
	case *p.MaintenanceFee == 0:
		return "noMaintenanceFee"
	}
	return ""
}
