package models

import "github.com/google/uuid"

// Order is immutable once created: there is no update operation anywhere.
// Total is computed server-side from the resolved products at checkout.
type Order struct {
	BaseModel
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Total     float64     `gorm:"not null;check:total >= 0" json:"total"`
	CoinsUsed int         `gorm:"not null;default:0" json:"coins_used"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem snapshots the product title and unit price at purchase time, so
// later catalog edits do not rewrite order history.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	LineTotal float64   `gorm:"not null" json:"line_total"`
}
