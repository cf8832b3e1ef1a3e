package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/store"
)

type MessageHandler struct {
	store *store.Store
}

func NewMessageHandler(st *store.Store) *MessageHandler {
	return &MessageHandler{store: st}
}

type SendMessageRequest struct {
	Body string `json:"body"`
	// UserID selects the customer thread for staff replies; customers always
	// write to their own thread and this field is ignored for them.
	UserID uuid.UUID `json:"user_id"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	return h.create(c, userID, models.SenderCustomer)
}

func (h *MessageHandler) ListOwn(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, limit, offset := pagination(c)
	messages, total, err := h.store.ListMessagesForUser(userID, limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list messages")
	}

	return listJSON(c, messages, total, page, limit)
}

// MarkRead flips is_read on a message the caller received: customers may
// only mark staff messages in their own thread.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid message id")
	}

	message, err := h.store.GetMessage(id)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load message")
	}
	if message == nil || message.UserID != userID || message.SenderRole != models.SenderStaff {
		return fail(c, fiber.StatusNotFound, "Message not found")
	}

	if err := h.store.MarkMessageRead(id); err != nil {
		if errors.Is(err, store.ErrMessageNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to mark message read")
	}

	return c.JSON(fiber.Map{"success": true})
}

// --- Admin ---

func (h *MessageHandler) ListAll(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)
	messages, total, err := h.store.ListAllMessages(limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list messages")
	}

	return listJSON(c, messages, total, page, limit)
}

// Reply posts a staff message into a customer's thread.
func (h *MessageHandler) Reply(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == uuid.Nil {
		return fail(c, fiber.StatusBadRequest, "user_id is required")
	}
	return h.create(c, req.UserID, models.SenderStaff)
}

// MarkReadAdmin lets staff mark a customer message as read in any thread.
func (h *MessageHandler) MarkReadAdmin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid message id")
	}

	if err := h.store.MarkMessageRead(id); err != nil {
		if errors.Is(err, store.ErrMessageNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to mark message read")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *MessageHandler) create(c *fiber.Ctx, threadUserID uuid.UUID, senderRole string) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Body == "" {
		return fail(c, fiber.StatusBadRequest, "body is required")
	}

	message := &models.Message{
		UserID:     threadUserID,
		SenderRole: senderRole,
		Body:       req.Body,
	}
	if err := h.store.CreateMessage(message); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}
