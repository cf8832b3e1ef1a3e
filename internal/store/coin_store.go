package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
)

// AppendCoinTransaction writes one ledger entry. The ledger is append-only:
// no update or delete method exists.
func (s *Store) AppendCoinTransaction(tx *models.CoinTransaction) error {
	if err := s.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to append coin transaction: %w", err)
	}
	return nil
}

func (s *Store) ListCoinTransactionsForUser(userID uuid.UUID, limit, offset int) ([]models.CoinTransaction, int64, error) {
	var txs []models.CoinTransaction
	var total int64

	if err := s.db.Model(&models.CoinTransaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count coin transactions: %w", err)
	}

	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coin transactions: %w", err)
	}
	return txs, total, nil
}

// SumCoinTransactionsForUser computes the ledger sum used for reconciliation
// against the live coin balance.
func (s *Store) SumCoinTransactionsForUser(userID uuid.UUID) (int64, error) {
	var sum int64
	err := s.db.Model(&models.CoinTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum coin transactions: %w", err)
	}
	return sum, nil
}
