package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velorahq/velora-backend/internal/models"
)

// ProductPatch is an explicit partial update: present fields overwrite the
// stored value, absent fields are left untouched.
type ProductPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

func (s *Store) CreateProduct(product *models.Product) error {
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetProduct returns the product regardless of its visibility flag; direct
// lookup always works, only listings filter on is_active.
func (s *Store) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *Store) ListActiveProducts(limit, offset int) ([]models.Product, int64, error) {
	return s.listProducts(true, limit, offset)
}

func (s *Store) ListAllProducts(limit, offset int) ([]models.Product, int64, error) {
	return s.listProducts(false, limit, offset)
}

func (s *Store) listProducts(activeOnly bool, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	countQuery := s.db.Model(&models.Product{})
	if activeOnly {
		countQuery = countQuery.Where("is_active = ?", true)
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	listQuery := s.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if activeOnly {
		listQuery = listQuery.Where("is_active = ?", true)
	}
	if err := listQuery.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// UpdateProduct merges the patch field-by-field onto the stored row and
// refreshes updated_at. ErrProductNotFound when the row does not exist.
func (s *Store) UpdateProduct(id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	if len(updates) > 0 {
		result := s.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrProductNotFound
		}
	}

	var product models.Product
	err := s.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return &product, nil
}
