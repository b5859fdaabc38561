package city

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the city fee table over HTTP. Reads are public; fee
// updates require admin.
type Handler struct {
	service *Service
	log     *zap.Logger
	dev     bool
}

func NewHandler(s *Service, log *zap.Logger, dev bool) *Handler {
	return &Handler{service: s, log: log, dev: dev}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/cities/init", h.initCities)
	app.Get("/api/cities", h.listCities)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, guard fiber.Handler) {
	app.Put("/api/cities", guard, h.updateFees)
}

func (h *Handler) initCities(c *fiber.Ctx) error {
	if _, _, err := h.service.EnsureSeeded(c.Context()); err != nil {
		return h.serverError(c, "Error initializing cities", err)
	}
	return c.JSON(fiber.Map{"message": "Cities initialized successfully"})
}

func (h *Handler) listCities(c *fiber.Ctx) error {
	cities, err := h.service.ListAll(c.Context())
	if err != nil {
		return h.serverError(c, "Failed to fetch cities", err)
	}
	return c.JSON(cities)
}

// feeUpdateRequest mirrors the admin panel payload; fees arrive as numbers
// or strings and anything non-numeric is coerced to 0.
type feeUpdateRequest struct {
	Updates []struct {
		ID         string          `json:"_id"`
		DesktopFee json.RawMessage `json:"desktopFee"`
		HouseFee   json.RawMessage `json:"houseFee"`
	} `json:"updates"`
}

func (h *Handler) updateFees(c *fiber.Ctx) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request format"})
	}
	updatesRaw, ok := raw["updates"]
	if !ok || !isJSONArray(updatesRaw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request format"})
	}

	var req feeUpdateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request format"})
	}

	updates := make([]FeeUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, FeeUpdate{
			ID:         u.ID,
			DesktopFee: coerceFee(u.DesktopFee),
			HouseFee:   coerceFee(u.HouseFee),
		})
	}

	cities, err := h.service.UpdateFees(c.Context(), updates)
	if err != nil {
		return h.serverError(c, "Server error", err)
	}
	return c.JSON(fiber.Map{"message": "Fees updated successfully", "cities": cities})
}

// coerceFee turns a raw JSON value into a non-negative integer fee;
// non-numeric input becomes 0.
func coerceFee(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n < 0 {
			return 0
		}
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
			return v
		}
	}
	return 0
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}

func (h *Handler) serverError(c *fiber.Ctx, message string, err error) error {
	h.log.Error(message, zap.Error(err))
	body := fiber.Map{"message": message}
	if h.dev {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
