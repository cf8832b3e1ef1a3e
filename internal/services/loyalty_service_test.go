package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/store"
	"github.com/velorahq/velora-backend/internal/testutil"
)

func newLoyaltyFixture(t *testing.T) (*LoyaltyService, *store.Store, *models.User) {
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
	return NewLoyaltyService(st), st, user
}

// checkLedger asserts the one invariant of the whole system: the ledger sum
// equals the live balance.
func checkLedger(t *testing.T, st *store.Store, userID uuid.UUID) {
	t.Helper()
	user, err := st.GetUser(userID)
	if err != nil || user == nil {
		t.Fatalf("get user: %v", err)
	}
	sum, err := st.SumCoinTransactionsForUser(userID)
	if err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if int64(user.CoinBalance) != sum {
		t.Fatalf("ledger sum %d != balance %d", sum, user.CoinBalance)
	}
}

func TestAwardCoins(t *testing.T) {
	svc, st, user := newLoyaltyFixture(t)

	related := uuid.New()
	updated, entry, err := svc.AwardCoins(user.ID, 20, models.TxTypeEarnedAppointment, "Coins earned for booking Haircut", &related)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if updated.CoinBalance != 20 {
		t.Fatalf("balance = %d, want 20", updated.CoinBalance)
	}
	if entry.Amount != 20 || entry.Type != models.TxTypeEarnedAppointment {
		t.Fatalf("unexpected ledger entry: %+v", entry)
	}
	if entry.RelatedID == nil || *entry.RelatedID != related {
		t.Fatalf("related id not recorded")
	}
	checkLedger(t, st, user.ID)
}

func TestAwardCoinsRejectsNonPositive(t *testing.T) {
	svc, st, user := newLoyaltyFixture(t)

	for _, amount := range []int{0, -5} {
		if _, _, err := svc.AwardCoins(user.ID, amount, models.TxTypeAdjustment, "", nil); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: err = %v, want ErrInvalidAmount", amount, err)
		}
	}

	// Nothing may be written by a rejected award.
	if sum, _ := st.SumCoinTransactionsForUser(user.ID); sum != 0 {
		t.Fatalf("ledger written despite validation failure")
	}
}

func TestAwardCoinsUnknownUserLeavesNoLedgerEntry(t *testing.T) {
	svc, st, _ := newLoyaltyFixture(t)

	ghost := uuid.New()
	_, _, err := svc.AwardCoins(ghost, 10, models.TxTypeAdjustment, "", nil)
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}

	// The transaction must have rolled the ledger append back.
	sum, err := st.SumCoinTransactionsForUser(ghost)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 0 {
		t.Fatalf("dangling ledger entry for nonexistent user")
	}
}

func TestRedeemCoinsBoundary(t *testing.T) {
	svc, st, user := newLoyaltyFixture(t)
	if _, _, err := svc.AwardCoins(user.ID, 100, models.TxTypeAdjustment, "initial grant", nil); err != nil {
		t.Fatalf("award: %v", err)
	}

	// amount == balance + 1 fails and leaves everything untouched.
	_, _, err := svc.RedeemCoins(user.ID, 101, models.TxTypeRedeemed, "", nil)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	after, _ := st.GetUser(user.ID)
	if after.CoinBalance != 100 {
		t.Fatalf("failed redeem changed balance: %d", after.CoinBalance)
	}
	if _, total, _ := st.ListCoinTransactionsForUser(user.ID, 10, 0); total != 1 {
		t.Fatalf("failed redeem wrote a ledger entry")
	}

	// amount == balance succeeds and leaves the balance at 0.
	updated, entry, err := svc.RedeemCoins(user.ID, 100, models.TxTypeRedeemed, "", nil)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if updated.CoinBalance != 0 {
		t.Fatalf("balance = %d, want 0", updated.CoinBalance)
	}
	if entry.Amount != -100 {
		t.Fatalf("ledger amount = %d, want -100", entry.Amount)
	}
	checkLedger(t, st, user.ID)
}

func TestRedeemCoinsConcurrent(t *testing.T) {
	svc, st, user := newLoyaltyFixture(t)
	if _, _, err := svc.AwardCoins(user.ID, 100, models.TxTypeAdjustment, "initial grant", nil); err != nil {
		t.Fatalf("award: %v", err)
	}

	// Each fits alone, together they exceed the balance: exactly one wins.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.RedeemCoins(user.ID, 60, models.TxTypeRedeemed, "", nil)
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || insufficient != 1 {
		t.Fatalf("succeeded=%d insufficient=%d, want exactly one of each", succeeded, insufficient)
	}

	final, _ := st.GetUser(user.ID)
	if final.CoinBalance != 40 {
		t.Fatalf("final balance = %d, want 40", final.CoinBalance)
	}
	checkLedger(t, st, user.ID)
}

func TestAdjustRoutesThroughLedger(t *testing.T) {
	svc, st, user := newLoyaltyFixture(t)

	if _, _, err := svc.Adjust(user.ID, 0, "noop"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero adjust: err = %v, want ErrInvalidAmount", err)
	}

	if _, entry, err := svc.Adjust(user.ID, 15, "goodwill"); err != nil || entry.Amount != 15 || entry.Type != models.TxTypeAdjustment {
		t.Fatalf("positive adjust: entry=%+v err=%v", entry, err)
	}

	if _, entry, err := svc.Adjust(user.ID, -5, "correction"); err != nil || entry.Amount != -5 {
		t.Fatalf("negative adjust: entry=%+v err=%v", entry, err)
	}

	// Negative adjustments still enforce sufficiency.
	if _, _, err := svc.Adjust(user.ID, -1000, "overdraw"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overdraw: err = %v, want ErrInsufficientFunds", err)
	}
	checkLedger(t, st, user.ID)
}

func TestReconcile(t *testing.T) {
	svc, _, user := newLoyaltyFixture(t)

	if _, _, err := svc.AwardCoins(user.ID, 30, models.TxTypeAdjustment, "grant", nil); err != nil {
		t.Fatalf("award: %v", err)
	}
	if _, _, err := svc.RedeemCoins(user.ID, 10, models.TxTypeRedeemed, "", nil); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	report, err := svc.Reconcile(user.ID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !report.Consistent || report.Balance != 20 || report.LedgerSum != 20 {
		t.Fatalf("report = %+v, want consistent 20/20", report)
	}

	if _, err := svc.Reconcile(uuid.New()); !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestLedgerInvariantAfterMixedSequence(t *testing.T) {
	svc, st, user := newLoyaltyFixture(t)

	ops := []struct {
		award  bool
		amount int
	}{
		{true, 100}, {false, 30}, {true, 7}, {false, 50}, {true, 12}, {false, 39},
	}
	for _, op := range ops {
		var err error
		if op.award {
			_, _, err = svc.AwardCoins(user.ID, op.amount, models.TxTypeAdjustment, "", nil)
		} else {
			_, _, err = svc.RedeemCoins(user.ID, op.amount, models.TxTypeRedeemed, "", nil)
		}
		if err != nil {
			t.Fatalf("op %+v: %v", op, err)
		}
		checkLedger(t, st, user.ID)
	}

	final, _ := st.GetUser(user.ID)
	if final.CoinBalance != 0 {
		t.Fatalf("final balance = %d, want 0", final.CoinBalance)
	}
}
