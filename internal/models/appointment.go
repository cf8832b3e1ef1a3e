package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment lifecycle statuses.
const (
	AppointmentStatusCreated   = "created"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

var AppointmentStatuses = []string{
	AppointmentStatusCreated,
	AppointmentStatusConfirmed,
	AppointmentStatusCancelled,
	AppointmentStatusCompleted,
}

// ValidAppointmentStatus reports whether s is a known lifecycle status.
func ValidAppointmentStatus(s string) bool {
	for _, status := range AppointmentStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Appointment is a booking made by a client. Status starts at "created" and
// is moved by staff; CoinsEarned is the loyalty reward granted at booking.
type Appointment struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Service     string    `gorm:"size:255;not null" json:"service"`
	Notes       string    `gorm:"type:text" json:"notes"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`
	CoinsEarned int       `gorm:"not null;default:0" json:"coins_earned"`
	Status      string    `gorm:"size:20;not null;default:'created'" json:"status"`
}
