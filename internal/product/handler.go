package product

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/xavihachem/backonyxia/internal/upload"
)

// Handler exposes the product catalog over HTTP. Reads are public, writes
// sit behind the admin guard.
type Handler struct {
	service *Service
	uploads *upload.Store
	log     *zap.Logger
	dev     bool
}

func NewHandler(s *Service, uploads *upload.Store, log *zap.Logger, dev bool) *Handler {
	return &Handler{service: s, uploads: uploads, log: log, dev: dev}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	// /home before /:id so the literal segment is not captured as an id
	app.Get("/api/products/home", h.listHome)
	app.Get("/api/products", h.listProducts)
	app.Get("/api/products/:id", h.getProduct)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, guard fiber.Handler) {
	app.Post("/api/products", guard, h.createProduct)
	app.Put("/api/products/:id", guard, h.updateProduct)
	app.Delete("/api/products/:id", guard, h.deleteProduct)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.Context())
	if err != nil {
		return h.serverError(c, "Error fetching products", err)
	}
	return c.JSON(products)
}

func (h *Handler) listHome(c *fiber.Ctx) error {
	products, err := h.service.ListHome(c.Context())
	if err != nil {
		return h.serverError(c, "Error fetching products", err)
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product ID format"})
	}

	p, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		return h.serverError(c, "Error fetching product", err)
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	created, err := h.service.Create(c.Context(), in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		}
		return h.serverError(c, "Error creating product", err)
	}

	h.log.Info("product created", zap.String("id", created.ID.Hex()), zap.String("name", created.Name))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product ID format: " + c.Params("id"),
		})
	}

	in, err := h.parseInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	updated, err := h.service.Update(c.Context(), id, in)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product with ID " + c.Params("id") + " not found",
			})
		default:
			return h.serverError(c, "Failed to update product", err)
		}
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product ID format"})
	}

	deleted, err := h.service.Delete(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		return h.serverError(c, "Error deleting product", err)
	}

	// best-effort cleanup of files the product owned
	h.uploads.Remove(deleted.Image)
	for _, img := range deleted.AdditionalImages {
		h.uploads.Remove(img)
	}

	h.log.Info("product deleted", zap.String("id", deleted.ID.Hex()))
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted"})
}

// parseInput reads a product payload from a JSON body or a multipart form.
// Multipart forms may carry the image files themselves; those are stored
// and their public paths folded into the input.
func (h *Handler) parseInput(c *fiber.Ctx) (Input, error) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		return h.inputFromForm(form)
	}

	var in Input
	if err := c.BodyParser(&in); err != nil {
		return Input{}, err
	}
	return in, nil
}

func (h *Handler) inputFromForm(form *multipart.Form) (Input, error) {
	value := func(key string) string {
		if vs := form.Value[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(value("price")), 64)
	quantity, _ := strconv.Atoi(strings.TrimSpace(value("stock")))
	position, _ := strconv.Atoi(strings.TrimSpace(value("home_position")))

	in := Input{
		Name:             value("name"),
		SmallDescription: value("smallDescription"),
		Description:      value("description"),
		Price:            FlexFloat(price),
		Image:            value("image"),
		DisplayHome:      FlexBool(value("display_home") == "true"),
		HomePosition:     FlexInt(position),
	}
	if value("stock") != "" {
		in.Stock = StockInput{Quantity: clampQuantity(quantity), Provided: true}
	}

	if fhs := form.File["image"]; len(fhs) > 0 {
		path, err := h.uploads.Save(fhs[0])
		if err != nil {
			return Input{}, err
		}
		in.Image = path
	}
	for _, fh := range form.File["additionalImages"] {
		path, err := h.uploads.Save(fh)
		if err != nil {
			return Input{}, err
		}
		in.AdditionalImages.Values = append(in.AdditionalImages.Values, path)
		in.AdditionalImages.Provided = true
	}
	if !in.AdditionalImages.Provided {
		for _, v := range form.Value["additionalImages"] {
			in.AdditionalImages.Values = append(in.AdditionalImages.Values, v)
			in.AdditionalImages.Provided = true
		}
	}
	return in, nil
}

func (h *Handler) serverError(c *fiber.Ctx, message string, err error) error {
	h.log.Error(message, zap.Error(err))
	body := fiber.Map{"success": false, "message": message}
	if h.dev {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
