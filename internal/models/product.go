package models

// Product is a catalog item. IsActive is a visibility flag: deactivated
// products disappear from the public listing but their rows stay.
type Product struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    string  `gorm:"size:512" json:"image_url"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`
}
