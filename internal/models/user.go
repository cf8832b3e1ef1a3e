package models

import "gorm.io/gorm"

// User is a studio client (or staff when Role is "admin"). Users are never
// hard-deleted. CoinBalance is only written through relative updates paired
// with a CoinTransaction entry; it must equal the sum of the user's ledger.
type User struct {
	BaseModel
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"size:100" json:"first_name"`
	LastName     string         `gorm:"size:100" json:"last_name"`
	Role         string         `gorm:"size:20;default:'user'" json:"role"`
	CoinBalance  int            `gorm:"not null;default:0" json:"coin_balance"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
