package handlers

import (
	"housingbuddy/internal/domain"
	applog "housingbuddy/internal/log"
	"housingbuddy/internal/overlay"
	"housingbuddy/internal/services"
	"housingbuddy/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	Props   *services.PropertyService
	Overlay *overlay.Registry
	Orch    *overlay.Orchestrator
}

// propertyView pairs a property with its text as the session should
// display it. Display equals the source text when no translation applies.
type propertyView struct {
	domain.Property
	Display map[string]string `json:"display"`
}

func display(s *overlay.Session, p domain.Property) propertyView {
	d := make(map[string]string, len(domain.PropertyTextFields))
	for _, f := range domain.PropertyTextFields {
		d[f] = s.Resolve(p.Text(f), services.FieldKey(f, p.ID))
	}
	return propertyView{Property: p, Display: d}
}

// GET /api/properties
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	q := services.ListQuery{
		Category:   c.Query("category"),
		Q:          c.Query("q"),
		ActiveOnly: c.QueryBool("activeOnly"),
		Page:       c.QueryInt("page", 1),
		PageSize:   c.QueryInt("pageSize", 20),
	}
	if field, msg := checkFilter(&q); field != "" {
		return badRequest(c, field, msg)
	}
	props, err := h.Props.List(q)
	if err != nil {
		return fail(c, "property.list.fail", err)
	}
	s := h.Overlay.Session(c.UserContext(), sessionID(c))
	out := make([]propertyView, 0, len(props))
	for _, p := range props {
		out = append(out, display(s, p))
	}
	return c.JSON(fiber.Map{"properties": out, "page": q.Page})
}

// GET /api/properties/:id
func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	p, err := h.Props.Get(id)
	if err != nil {
		return fail(c, "property.get.fail", err)
	}
	s := h.Overlay.Session(c.UserContext(), sessionID(c))
	// A property added after the last language switch has no cached text yet.
	if err := h.Orch.TranslateFields(c.UserContext(), s, services.PropertyItems(p)); err != nil {
		applog.Error(c, "translate.fields.fail", err, map[string]any{"property": id})
	}
	return c.JSON(display(s, p))
}

// POST /api/properties
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var in services.PropertyInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	p, err := h.Props.Create(in)
	if err != nil {
		return fail(c, "property.create.fail", err)
	}
	applog.Audit(c, "property.create", map[string]any{"property": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/properties/:id
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	var in services.PropertyInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	p, err := h.Props.Update(id, in)
	if err != nil {
		return fail(c, "property.update.fail", err)
	}
	applog.Audit(c, "property.update", map[string]any{"property": id})
	return c.JSON(p)
}

// DELETE /api/properties/:id moves the property to the trash.
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "id", "must be a positive number")
	}
	if err := h.Props.Delete(id); err != nil {
		return fail(c, "property.delete.fail", err)
	}
	applog.Audit(c, "property.delete", map[string]any{"property": id})
	return c.JSON(fiber.Map{"ok": true})
}

// checkFilter normalizes the keyword and category of q. It returns the
// offending field and a message when either is malformed.
func checkFilter(q *services.ListQuery) (field, msg string) {
	if q.Q != "" {
		kw, ok := validate.Q(q.Q)
		if !ok {
			return "q", "letters, digits and spaces only"
		}
		q.Q = kw
	}
	if q.Category != "" {
		cat, ok := validate.Category(q.Category)
		if !ok {
			return "category", "invalid category"
		}
		q.Category = cat
	}
	return "", ""
}
