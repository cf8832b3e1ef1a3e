package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/store"
)

var (
	ErrInvalidBooking = errors.New("service and scheduled time are required")
	ErrInvalidStatus  = errors.New("invalid appointment status")
)

// AppointmentService books appointments and grants the loyalty reward that
// comes with them as one atomic unit.
type AppointmentService struct {
	store         *store.Store
	defaultReward int
}

func NewAppointmentService(st *store.Store, defaultReward int) *AppointmentService {
	return &AppointmentService{store: st, defaultReward: defaultReward}
}

// Book creates the appointment with status "created" and awards coinsEarned
// with type earned_appointment in the same transaction. A nil coinsEarned
// falls back to the configured default reward; a zero reward books without a
// ledger entry. All validation happens before any write.
func (s *AppointmentService) Book(userID uuid.UUID, service, notes string, scheduledAt time.Time, coinsEarned *int) (*models.Appointment, error) {
	if service == "" || scheduledAt.IsZero() {
		return nil, ErrInvalidBooking
	}

	reward := s.defaultReward
	if coinsEarned != nil {
		reward = *coinsEarned
	}
	if reward < 0 {
		return nil, ErrInvalidAmount
	}

	appointment := &models.Appointment{
		UserID:      userID,
		Service:     service,
		Notes:       notes,
		ScheduledAt: scheduledAt,
		CoinsEarned: reward,
		Status:      models.AppointmentStatusCreated,
	}

	err := s.store.Transaction(func(tx *store.Store) error {
		if err := tx.CreateAppointment(appointment); err != nil {
			return err
		}
		if reward == 0 {
			return nil
		}
		description := fmt.Sprintf("Coins earned for booking %s", service)
		_, _, err := awardCoins(tx, userID, reward, models.TxTypeEarnedAppointment, description, &appointment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// SetStatus moves an appointment through its lifecycle. Unknown statuses are
// rejected before any mutation.
func (s *AppointmentService) SetStatus(id uuid.UUID, status string) (*models.Appointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.store.SetAppointmentStatus(id, status)
}
