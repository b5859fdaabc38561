package admin

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the session lifecycle endpoints and the RequireAuth
// guard wrapped around mutating routes.
type Handler struct {
	service *Service
	log     *zap.Logger
	ttl     time.Duration
	secure  bool
}

// NewHandler builds the auth handler. secure controls the cookie's Secure
// flag and is off in development so plain-HTTP logins work locally.
func NewHandler(s *Service, log *zap.Logger, ttl time.Duration, secure bool) *Handler {
	return &Handler{service: s, log: log, ttl: ttl, secure: secure}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/admin/login", h.login)
	app.Get("/api/admin/verify", h.verify)
	app.Post("/api/admin/logout", h.logout)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	sess, err := h.service.Login(c.Context(), payload.Username, payload.Password, c.Cookies(SessionCookie))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid username or password"})
		}
		h.log.Error("login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create session"})
	}

	h.setSessionCookie(c, sess.ID)
	h.log.Info("admin logged in", zap.String("username", sess.Username))
	return c.JSON(fiber.Map{"success": true, "message": "Login successful", "username": sess.Username})
}

// verify always answers 200 so intermediaries cannot mask the negative
// case; "not authenticated" is a delivered result, not a fault.
func (h *Handler) verify(c *fiber.Ctx) error {
	username, ok := h.service.Verify(c.Context(), c.Cookies(SessionCookie))
	if !ok {
		return c.JSON(fiber.Map{"success": false})
	}
	return c.JSON(fiber.Map{"success": true, "username": username})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.Context(), c.Cookies(SessionCookie)); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to end session"})
	}
	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

// RequireAuth rejects requests that do not present a live session. The
// authenticated username is stored in locals under "adminUser".
func (h *Handler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := h.service.Verify(c.Context(), c.Cookies(SessionCookie))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
		}
		c.Locals("adminUser", username)
		return c.Next()
	}
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, id string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
