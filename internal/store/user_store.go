package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velorahq/velora-backend/internal/models"
)

func (s *Store) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// UpsertUser inserts the user, or on id conflict overwrites the profile
// fields and refreshes updated_at. Full-field overwrite, no merge; a single
// atomic statement.
func (s *Store) UpsertUser(user *models.User) (*models.User, error) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	var saved models.User
	if err := s.db.First(&saved, "id = ?", user.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload upserted user: %w", err)
	}
	return &saved, nil
}

// AdjustUserCoinBalance applies balance += delta as a single relative UPDATE
// executed by the storage engine, never a read-modify-write, and returns the
// updated row. ErrUserNotFound when the row does not exist.
func (s *Store) AdjustUserCoinBalance(id uuid.UUID, delta int) (*models.User, error) {
	result := s.db.Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("coin_balance", gorm.Expr("coin_balance + ?", delta))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to adjust coin balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return &user, nil
}

// TryDebitUserCoinBalance debits the balance with a guarded relative UPDATE
// (coin_balance >= amount), so the sufficiency check and the debit are one
// compare-and-swap. Returns (false, nil) when the guard fails on an existing
// user, ErrUserNotFound when the user does not exist.
func (s *Store) TryDebitUserCoinBalance(id uuid.UUID, amount int) (bool, error) {
	result := s.db.Model(&models.User{}).
		Where("id = ? AND coin_balance >= ?", id, amount).
		UpdateColumn("coin_balance", gorm.Expr("coin_balance - ?", amount))
	if result.Error != nil {
		return false, fmt.Errorf("failed to debit coin balance: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	if count == 0 {
		return false, ErrUserNotFound
	}
	return false, nil
}
