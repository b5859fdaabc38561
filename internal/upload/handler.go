package upload

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the file upload endpoint.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, guard fiber.Handler) {
	app.Post("/api/upload", guard, h.uploadFile)
}

func (h *Handler) uploadFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "image file is required"})
	}

	path, err := h.store.Save(fh)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to store file"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "path": path})
}
