package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/store"
)

var (
	ErrInvalidAmount     = errors.New("coin amount must be a positive integer")
	ErrInsufficientFunds = errors.New("insufficient coin balance")
)

// LoyaltyService enforces the coin ledger policy: every balance change is
// paired with exactly one immutable ledger entry inside one database
// transaction. No intermediate state is observable outside the transaction.
type LoyaltyService struct {
	store *store.Store
}

func NewLoyaltyService(st *store.Store) *LoyaltyService {
	return &LoyaltyService{store: st}
}

// AwardCoins credits amount to the user: one positive ledger entry plus the
// matching relative balance update, both in a single transaction.
func (s *LoyaltyService) AwardCoins(userID uuid.UUID, amount int, txType, description string, relatedID *uuid.UUID) (*models.User, *models.CoinTransaction, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	var user *models.User
	var entry *models.CoinTransaction
	err := s.store.Transaction(func(tx *store.Store) error {
		var err error
		user, entry, err = awardCoins(tx, userID, amount, txType, description, relatedID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return user, entry, nil
}

// RedeemCoins debits amount from the user: a guarded relative debit plus one
// negative ledger entry, both in a single transaction. ErrInsufficientFunds
// when the balance does not cover the amount; nothing is written in that case.
func (s *LoyaltyService) RedeemCoins(userID uuid.UUID, amount int, txType, description string, relatedID *uuid.UUID) (*models.User, *models.CoinTransaction, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	var user *models.User
	var entry *models.CoinTransaction
	err := s.store.Transaction(func(tx *store.Store) error {
		var err error
		user, entry, err = redeemCoins(tx, userID, amount, txType, description, relatedID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return user, entry, nil
}

// Adjust applies a signed manual correction. Positive amounts route through
// the award path, negative through the redeem path, so sufficiency is still
// enforced and the ledger pairing holds.
func (s *LoyaltyService) Adjust(userID uuid.UUID, amount int, description string) (*models.User, *models.CoinTransaction, error) {
	if amount == 0 {
		return nil, nil, ErrInvalidAmount
	}
	if amount > 0 {
		return s.AwardCoins(userID, amount, models.TxTypeAdjustment, description, nil)
	}
	return s.RedeemCoins(userID, -amount, models.TxTypeAdjustment, description, nil)
}

// ReconciliationReport compares the live balance against the ledger sum.
type ReconciliationReport struct {
	UserID     uuid.UUID `json:"user_id"`
	Balance    int       `json:"balance"`
	LedgerSum  int64     `json:"ledger_sum"`
	Consistent bool      `json:"consistent"`
}

func (s *LoyaltyService) Reconcile(userID uuid.UUID) (*ReconciliationReport, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, store.ErrUserNotFound
	}

	sum, err := s.store.SumCoinTransactionsForUser(userID)
	if err != nil {
		return nil, err
	}

	return &ReconciliationReport{
		UserID:     userID,
		Balance:    user.CoinBalance,
		LedgerSum:  sum,
		Consistent: int64(user.CoinBalance) == sum,
	}, nil
}

// awardCoins runs the credit against an already tx-bound store, so composed
// flows (booking, checkout) can include it in their own atomic unit.
func awardCoins(tx *store.Store, userID uuid.UUID, amount int, txType, description string, relatedID *uuid.UUID) (*models.User, *models.CoinTransaction, error) {
	entry := &models.CoinTransaction{
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := tx.AppendCoinTransaction(entry); err != nil {
		return nil, nil, err
	}

	user, err := tx.AdjustUserCoinBalance(userID, amount)
	if err != nil {
		return nil, nil, err
	}
	return user, entry, nil
}

// redeemCoins runs the debit against an already tx-bound store. The guard
// and the debit are one compare-and-swap: two concurrent redeems that
// jointly exceed the balance cannot both pass.
func redeemCoins(tx *store.Store, userID uuid.UUID, amount int, txType, description string, relatedID *uuid.UUID) (*models.User, *models.CoinTransaction, error) {
	ok, err := tx.TryDebitUserCoinBalance(userID, amount)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrInsufficientFunds
	}

	entry := &models.CoinTransaction{
		UserID:      userID,
		Amount:      -amount,
		Type:        txType,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := tx.AppendCoinTransaction(entry); err != nil {
		return nil, nil, err
	}

	user, err := tx.GetUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, store.ErrUserNotFound
	}
	return user, entry, nil
}
