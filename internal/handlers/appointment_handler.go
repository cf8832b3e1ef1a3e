package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/services"
	"github.com/velorahq/velora-backend/internal/store"
)

type AppointmentHandler struct {
	appointments *services.AppointmentService
	store        *store.Store
}

func NewAppointmentHandler(appointments *services.AppointmentService, st *store.Store) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, store: st}
}

type BookAppointmentRequest struct {
	Service     string    `json:"service"`
	Notes       string    `json:"notes"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CoinsEarned *int      `json:"coins_earned"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	appointment, err := h.appointments.Book(userID, req.Service, req.Notes, req.ScheduledAt, req.CoinsEarned)
	if err != nil {
		if errors.Is(err, services.ErrInvalidBooking) || errors.Is(err, services.ErrInvalidAmount) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to book appointment")
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func (h *AppointmentHandler) ListOwn(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, limit, offset := pagination(c)
	appointments, total, err := h.store.ListAppointmentsForUser(userID, limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list appointments")
	}

	return listJSON(c, appointments, total, page, limit)
}

// --- Admin ---

func (h *AppointmentHandler) ListAll(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)
	appointments, total, err := h.store.ListAllAppointments(limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list appointments")
	}

	return listJSON(c, appointments, total, page, limit)
}

func (h *AppointmentHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid appointment id")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	appointment, err := h.appointments.SetStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrAppointmentNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to update appointment")
	}

	return c.JSON(appointment)
}
