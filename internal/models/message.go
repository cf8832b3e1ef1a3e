package models

import "github.com/google/uuid"

// Message sender roles.
const (
	SenderCustomer = "customer"
	SenderStaff    = "staff"
)

// Message belongs to a customer's thread with the studio. IsRead is the only
// mutable field and is toggled by the recipient side.
type Message struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SenderRole string    `gorm:"size:20;not null" json:"sender_role"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
}
