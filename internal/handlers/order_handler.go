package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/services"
	"github.com/velorahq/velora-backend/internal/store"
)

type OrderHandler struct {
	orders *services.OrderService
	store  *store.Store
}

func NewOrderHandler(orders *services.OrderService, st *store.Store) *OrderHandler {
	return &OrderHandler{orders: orders, store: st}
}

type PlaceOrderRequest struct {
	Items     []services.OrderItemInput `json:"items"`
	CoinsUsed int                       `json:"coins_used"`
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	order, err := h.orders.PlaceOrder(userID, req.Items, req.CoinsUsed)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrProductInactive),
			errors.Is(err, services.ErrInsufficientFunds):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrProductNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to place order")
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) ListOwn(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, limit, offset := pagination(c)
	orders, total, err := h.store.ListOrdersForUser(userID, limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list orders")
	}

	return listJSON(c, orders, total, page, limit)
}

func (h *OrderHandler) GetOwn(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	order, err := h.store.GetOrderForUser(id, userID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load order")
	}
	if order == nil {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}

	return c.JSON(order)
}

// --- Admin ---

func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)
	orders, total, err := h.store.ListAllOrders(limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list orders")
	}

	return listJSON(c, orders, total, page, limit)
}
