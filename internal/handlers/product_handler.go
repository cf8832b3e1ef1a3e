package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/store"
)

type ProductHandler struct {
	store *store.Store
}

func NewProductHandler(st *store.Store) *ProductHandler {
	return &ProductHandler{store: st}
}

type CreateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

func (h *ProductHandler) ListActive(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)
	products, total, err := h.store.ListActiveProducts(limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list products")
	}

	return listJSON(c, products, total, page, limit)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load product")
	}
	if product == nil {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}

	return c.JSON(product)
}

// --- Admin ---

func (h *ProductHandler) ListAll(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)
	products, total, err := h.store.ListAllProducts(limit, offset)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to list products")
	}

	return listJSON(c, products, total, page, limit)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.Price < 0 {
		return fail(c, fiber.StatusBadRequest, "title is required and price must not be negative")
	}

	product := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := h.store.CreateProduct(product); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create product")
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	var patch store.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return fail(c, fiber.StatusBadRequest, "price must not be negative")
	}

	product, err := h.store.UpdateProduct(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to update product")
	}

	return c.JSON(product)
}
