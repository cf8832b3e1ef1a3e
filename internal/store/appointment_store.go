package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velorahq/velora-backend/internal/models"
)

func (s *Store) CreateAppointment(appointment *models.Appointment) error {
	if err := s.db.Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (s *Store) GetAppointment(id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// ListAppointmentsForUser returns the user's appointments ordered by the
// appointment date, most recent first.
func (s *Store) ListAppointmentsForUser(userID uuid.UUID, limit, offset int) ([]models.Appointment, int64, error) {
	var appointments []models.Appointment
	var total int64

	if err := s.db.Model(&models.Appointment{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	err := s.db.Where("user_id = ?", userID).
		Order("scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, total, nil
}

func (s *Store) ListAllAppointments(limit, offset int) ([]models.Appointment, int64, error) {
	var appointments []models.Appointment
	var total int64

	if err := s.db.Model(&models.Appointment{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	err := s.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, total, nil
}

// SetAppointmentStatus moves the appointment to the given status. Status
// validity is the caller's responsibility.
func (s *Store) SetAppointmentStatus(id uuid.UUID, status string) (*models.Appointment, error) {
	result := s.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAppointmentNotFound
	}

	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload appointment: %w", err)
	}
	return &appointment, nil
}
