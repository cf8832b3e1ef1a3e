package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/store"
)

type ProfileHandler struct {
	store *store.Store
}

func NewProfileHandler(st *store.Store) *ProfileHandler {
	return &ProfileHandler{store: st}
}

type UpdateProfileRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.store.GetUser(userID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	if user == nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	return c.JSON(user)
}

// Update overwrites the profile fields wholesale via the upsert; identical
// payloads are idempotent apart from the refreshed update timestamp.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" {
		return fail(c, fiber.StatusBadRequest, "email is required")
	}

	user, err := h.store.UpsertUser(&models.User{
		BaseModel: models.BaseModel{ID: userID},
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return c.JSON(user)
}
