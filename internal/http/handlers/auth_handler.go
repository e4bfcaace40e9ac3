package handlers

import (
	"errors"

	"housingbuddy/internal/log"
	"housingbuddy/internal/services"
	"housingbuddy/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	u, err := h.Auth.Register(c.UserContext(), in)
	if u == nil {
		if errors.Is(err, services.ErrEmailTaken) {
			log.Security(c, "auth.register.duplicate", map[string]any{"email": in.Email})
		}
		return fail(c, "auth.register.fail", err)
	}
	sent := err == nil
	if !sent {
		log.Error(c, "auth.verification.send.fail", err, map[string]any{"user": u.ID})
	}
	log.Audit(c, "auth.register", map[string]any{"user": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u, "verificationSent": sent})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	email, ok := validate.Email(in.Email)
	if !ok || in.Password == "" {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrBadCreds.Error()})
	}
	u, err := h.Auth.Login(c.UserContext(), sessionID(c), email, in.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": reason(err)})
		return fail(c, "auth.login.fail", err)
	}
	c.Locals("user", u)
	c.Locals("admin", false)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"user": u})
}

func reason(err error) string {
	switch {
	case errors.Is(err, services.ErrBadCreds):
		return "bad_credentials"
	case errors.Is(err, services.ErrNotVerified):
		return "not_verified"
	}
	return "error"
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.Logout(sessionID(c)); err != nil {
		return fail(c, "auth.logout.fail", err)
	}
	log.Audit(c, "auth.logout", nil)
	c.Locals("user", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": currentUser(c), "isAdmin": isAdmin(c)})
}

// GET /api/auth/verify?token=
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	if err := h.Auth.Verify(c.Query("token")); err != nil {
		log.Security(c, "auth.verify.fail", nil)
		return fail(c, "auth.verify.fail", err)
	}
	log.Audit(c, "auth.verify", nil)
	return c.JSON(fiber.Map{"verified": true})
}

// POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "malformed request body")
	}
	if err := h.Auth.ResendVerification(c.UserContext(), in.Email); err != nil {
		return fail(c, "auth.verification.resend.fail", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
