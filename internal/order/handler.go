package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the order workflow over HTTP.
type Handler struct {
	service *Service
	log     *zap.Logger
	dev     bool
}

// NewHandler builds an order handler. dev controls whether store error
// details are echoed in responses.
func NewHandler(s *Service, log *zap.Logger, dev bool) *Handler {
	return &Handler{service: s, log: log, dev: dev}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/orders", h.createOrder)
	app.Get("/api/orders", h.listOrders)
	app.Get("/api/orders/:id", h.getOrder)
}

// RegisterAdminRoutes wires the mutating endpoints behind the auth guard.
func (h *Handler) RegisterAdminRoutes(app *fiber.App, guard fiber.Handler) {
	app.Put("/api/orders/:id", guard, h.updateStatus)
	app.Patch("/api/orders/:id/status", guard, h.updateStatus)
	app.Delete("/api/orders/:id", guard, h.deleteOrder)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(CreateOrderInput)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	created, err := h.service.Create(c.Context(), *payload)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			body := fiber.Map{"success": false, "message": verr.Message}
			if len(verr.MissingFields) > 0 {
				body["missingFields"] = verr.MissingFields
			}
			return c.Status(fiber.StatusBadRequest).JSON(body)
		case errors.Is(err, ErrDuplicateOrderID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Duplicate order ID",
				"error":   "An order with this ID already exists",
			})
		default:
			return h.serverError(c, "Failed to create order", err)
		}
	}

	h.log.Info("order created",
		zap.String("orderId", created.OrderID),
		zap.Int("itemCount", created.ItemCount),
		zap.Float64("total", created.Total))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created successfully",
		"orderId": created.OrderID,
		"data":    created,
	})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.Context())
	if err != nil {
		return h.serverError(c, "Failed to fetch orders", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	ord, err := h.service.GetByOrderID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Order not found"})
		}
		return h.serverError(c, "Failed to fetch order", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ord})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Status is required"})
	}

	ord, err := h.service.SetStatus(c.Context(), c.Params("id"), payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid status. Must be one of: " + strings.Join(ValidStatuses, ", "),
			})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("Order with ID %s not found", c.Params("id")),
			})
		default:
			return h.serverError(c, "Failed to update order status", err)
		}
	}

	h.log.Info("order status updated", zap.String("orderId", ord.OrderID), zap.String("status", ord.Status))
	return c.JSON(fiber.Map{"success": true, "message": "Order status updated", "data": ord})
}

func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	ord, err := h.service.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("Order with ID %s not found", c.Params("id")),
			})
		}
		return h.serverError(c, "Failed to delete order", err)
	}

	h.log.Info("order deleted", zap.String("orderId", ord.OrderID))
	return c.JSON(fiber.Map{"success": true, "message": "Order deleted successfully", "order": ord})
}

func (h *Handler) serverError(c *fiber.Ctx, message string, err error) error {
	h.log.Error(message, zap.Error(err))
	body := fiber.Map{"success": false, "message": message}
	if h.dev {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

