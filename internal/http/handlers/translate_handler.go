package handlers

import (
	"context"
	"errors"
	"time"

	applog "housingbuddy/internal/log"
	"housingbuddy/internal/overlay"
	"housingbuddy/internal/translate"

	"github.com/gofiber/fiber/v2"
)

const (
	maxTranslateItems = 500
	maxTranslateText  = 5000
)

type TranslateHandler struct {
	Batcher translate.Batcher
	Langs   *translate.Languages
	Overlay *overlay.Registry
	Orch    *overlay.Orchestrator
	Timeout time.Duration
}

type translateRequest struct {
	Items      []translate.Item `json:"items"`
	TargetLang string           `json:"targetLang"`
}

// POST /api/translate translates an arbitrary batch without touching the
// session overlay.
func (h *TranslateHandler) Translate(c *fiber.Ctx) error {
	var in translateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	lang, err := h.Langs.Parse(in.TargetLang)
	if err != nil {
		return badRequest(c, "targetLang", "unsupported language")
	}
	if len(in.Items) > maxTranslateItems {
		return badRequest(c, "items", "too many items")
	}
	for _, it := range in.Items {
		if it.Key == "" || len(it.Text) > maxTranslateText {
			return badRequest(c, "items", "every item needs a key and at most 5000 bytes of text")
		}
	}
	if len(in.Items) == 0 || lang == h.Langs.Source {
		out := make(map[string]string, len(in.Items))
		for _, it := range in.Items {
			out[it.Key] = it.Text
		}
		return c.JSON(fiber.Map{"translations": out})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout())
	defer cancel()
	got, err := h.Batcher.TranslateBatch(ctx, in.Items, lang)
	if err != nil {
		applog.Error(c, "translate.batch.fail", err, map[string]any{"target": lang, "items": len(in.Items)})
		if !errors.Is(err, translate.ErrUpstream) {
			err = errors.Join(translate.ErrUpstream, err)
		}
		return fail(c, "translate.batch.fail", err)
	}
	return c.JSON(fiber.Map{"translations": got})
}

func (h *TranslateHandler) timeout() time.Duration {
	if h.Timeout <= 0 {
		return 15 * time.Second
	}
	return h.Timeout
}

// GET /api/lang
func (h *TranslateHandler) State(c *fiber.Ctx) error {
	s := h.Overlay.Session(c.UserContext(), sessionID(c))
	return c.JSON(fiber.Map{"state": s.State(), "languages": h.Langs.List(), "source": h.Langs.Source})
}

// POST /api/lang switches the session's display language.
func (h *TranslateHandler) Select(c *fiber.Ctx) error {
	var in struct {
		Language string `json:"language"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	s := h.Overlay.Session(c.UserContext(), sessionID(c))
	st, err := h.Orch.TranslateAll(c.UserContext(), s, in.Language)
	switch {
	case err == nil:
		applog.Info(c, "lang.select", map[string]any{"language": st.TargetLanguage})
		return c.JSON(fiber.Map{"state": st})
	case errors.Is(err, overlay.ErrSuperseded):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "state": st})
	case errors.Is(err, translate.ErrUnsupportedLanguage):
		return badRequest(c, "language", "unsupported language")
	}
	// Provider failures are not fatal: the page keeps showing what it showed.
	applog.Error(c, "lang.select.fail", err, map[string]any{"language": in.Language})
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "translation failed, showing original text", "state": st})
}

// POST /api/resolve returns display text for {key, text} pairs. An empty
// key looks the text itself up.
func (h *TranslateHandler) Resolve(c *fiber.Ctx) error {
	var in struct {
		Items []translate.Item `json:"items"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	if len(in.Items) > maxTranslateItems {
		return badRequest(c, "items", "too many items")
	}
	s := h.Overlay.Session(c.UserContext(), sessionID(c))
	out := make([]translate.Item, 0, len(in.Items))
	for _, it := range in.Items {
		out = append(out, translate.Item{Key: it.Key, Text: s.Resolve(it.Text, it.Key)})
	}
	return c.JSON(fiber.Map{"items": out, "state": s.State()})
}

// GET /api/i18n returns the interface strings in the session's language.
func (h *TranslateHandler) Catalog(c *fiber.Ctx) error {
	s := h.Overlay.Session(c.UserContext(), sessionID(c))
	return c.JSON(fiber.Map{"strings": s.ResolveAll(overlay.UICatalog), "state": s.State()})
}
