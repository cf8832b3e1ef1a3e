package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/store"
	"github.com/velorahq/velora-backend/internal/testutil"
)

func newBookingFixture(t *testing.T) (*AppointmentService, *LoyaltyService, *store.Store, *models.User) {
	t.Helper()
	st := store.New(testutil.NewDB(t))
	user, err := st.UpsertUser(&models.User{
		Email:        fmt.Sprintf("client-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		Role:         "user",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewAppointmentService(st, 10), NewLoyaltyService(st), st, user
}

func TestBookAwardsCoinsAtomically(t *testing.T) {
	svc, loyalty, st, user := newBookingFixture(t)

	// Start the user at 100 so the scenario matches a returning client.
	if _, _, err := loyalty.AwardCoins(user.ID, 100, models.TxTypeAdjustment, "grant", nil); err != nil {
		t.Fatalf("grant: %v", err)
	}

	reward := 20
	appointment, err := svc.Book(user.ID, "Deep Tissue Massage", "", time.Now().Add(72*time.Hour), &reward)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appointment.Status != models.AppointmentStatusCreated {
		t.Fatalf("status = %q, want created", appointment.Status)
	}
	if appointment.CoinsEarned != 20 {
		t.Fatalf("coins earned = %d, want 20", appointment.CoinsEarned)
	}

	after, _ := st.GetUser(user.ID)
	if after.CoinBalance != 120 {
		t.Fatalf("balance = %d, want 120", after.CoinBalance)
	}

	txs, total, err := st.ListCoinTransactionsForUser(user.ID, 10, 0)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if total != 2 {
		t.Fatalf("ledger entries = %d, want 2", total)
	}
	entry := txs[0]
	if entry.CreatedAt.Before(txs[1].CreatedAt) {
		entry = txs[1]
	}
	if entry.Amount != 20 || entry.Type != models.TxTypeEarnedAppointment {
		t.Fatalf("booking entry = %+v, want +20 earned_appointment", entry)
	}
	if entry.RelatedID == nil || *entry.RelatedID != appointment.ID {
		t.Fatalf("booking entry not related to the appointment")
	}
}

func TestBookDefaultRewardAndZeroReward(t *testing.T) {
	svc, _, st, user := newBookingFixture(t)

	appointment, err := svc.Book(user.ID, "Haircut", "window seat", time.Now().Add(24*time.Hour), nil)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appointment.CoinsEarned != 10 {
		t.Fatalf("default reward = %d, want 10", appointment.CoinsEarned)
	}

	zero := 0
	if _, err := svc.Book(user.ID, "Fringe Trim", "", time.Now().Add(48*time.Hour), &zero); err != nil {
		t.Fatalf("zero-reward book: %v", err)
	}

	// Only the default-reward booking may have produced a ledger entry.
	_, total, err := st.ListCoinTransactionsForUser(user.ID, 10, 0)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if total != 1 {
		t.Fatalf("ledger entries = %d, want 1 (zero reward books without one)", total)
	}
}

func TestBookValidation(t *testing.T) {
	svc, _, st, user := newBookingFixture(t)

	if _, err := svc.Book(user.ID, "", "", time.Now(), nil); !errors.Is(err, ErrInvalidBooking) {
		t.Fatalf("empty service: err = %v, want ErrInvalidBooking", err)
	}
	if _, err := svc.Book(user.ID, "Haircut", "", time.Time{}, nil); !errors.Is(err, ErrInvalidBooking) {
		t.Fatalf("zero time: err = %v, want ErrInvalidBooking", err)
	}
	negative := -3
	if _, err := svc.Book(user.ID, "Haircut", "", time.Now(), &negative); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative reward: err = %v, want ErrInvalidAmount", err)
	}

	if _, total, _ := st.ListAllAppointments(10, 0); total != 0 {
		t.Fatalf("rejected bookings wrote appointments")
	}
}

func TestBookUnknownUserRollsBackAppointment(t *testing.T) {
	svc, _, st, _ := newBookingFixture(t)

	_, err := svc.Book(uuid.New(), "Haircut", "", time.Now().Add(time.Hour), nil)
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}

	// The reward failed, so the appointment creation must have rolled back too.
	if _, total, _ := st.ListAllAppointments(10, 0); total != 0 {
		t.Fatalf("appointment escaped the rolled-back transaction")
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, st, user := newBookingFixture(t)

	appointment, err := svc.Book(user.ID, "Facial", "", time.Now().Add(time.Hour), nil)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if _, err := svc.SetStatus(appointment.ID, "rescheduled"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}

	got, _ := st.GetAppointment(appointment.ID)
	if got.Status != models.AppointmentStatusCreated {
		t.Fatalf("status mutated despite invalid input: %q", got.Status)
	}

	updated, err := svc.SetStatus(appointment.ID, models.AppointmentStatusCompleted)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != models.AppointmentStatusCompleted {
		t.Fatalf("status = %q, want completed", updated.Status)
	}
}
