package models

import "github.com/google/uuid"

// Coin transaction types.
const (
	TxTypeEarnedAppointment = "earned_appointment"
	TxTypeRedeemed          = "redeemed"
	TxTypeAdjustment        = "adjustment"
)

// CoinTransaction is one entry of the append-only loyalty ledger. Rows are
// never updated or deleted; the signed Amount sums to the owner's balance.
// RelatedID points at the entity that caused the entry (appointment, order).
type CoinTransaction struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      int        `gorm:"not null" json:"amount"`
	Type        string     `gorm:"size:30;not null" json:"type"`
	Description string     `gorm:"size:255" json:"description"`
	RelatedID   *uuid.UUID `gorm:"type:uuid" json:"related_id,omitempty"`
}
