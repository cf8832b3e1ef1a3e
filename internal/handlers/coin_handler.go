package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/services"
	"github.com/velorahq/velora-backend/internal/store"
)

type CoinHandler struct {
	loyalty *services.LoyaltyService
	store   *store.Store
}

func NewCoinHandler(loyalty *services.LoyaltyService, st *store.Store) *CoinHandler {
	return &CoinHandler{loyalty: loyalty, store: st}
}

type AdjustCoinsRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
}

func (h *CoinHandler) ListOwnTransactions(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, limit, offset := pagination(c)
	txs, total, err := h.store.ListCoinTransactionsForUser(userID, limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list coin transactions")
	}

	return listJSON(c, txs, total, page, limit)
}

// --- Admin ---

// Adjust applies a signed manual balance correction, paired with a ledger
// entry like every other balance change.
func (h *CoinHandler) Adjust(c *fiber.Ctx) error {
	var req AdjustCoinsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == uuid.Nil {
		return fail(c, fiber.StatusBadRequest, "user_id is required")
	}

	user, entry, err := h.loyalty.Adjust(req.UserID, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrInsufficientFunds):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to adjust coins")
	}

	return c.JSON(fiber.Map{"user": user, "transaction": entry})
}

// Reconcile reports the live balance against the ledger sum for one user.
func (h *CoinHandler) Reconcile(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user id")
	}

	report, err := h.loyalty.Reconcile(userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to reconcile")
	}

	return c.JSON(report)
}
