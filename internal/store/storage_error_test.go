package store

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockStore backs the store with a sqlmock connection so driver failures
// can be injected.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return New(db), mock
}

func TestStorageErrorsSurfaceWrapped(t *testing.T) {
	st, mock := newMockStore(t)

	driverErr := errors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(driverErr)

	_, err := st.GetUser(uuid.New())
	if err == nil {
		t.Fatalf("expected the driver error to surface")
	}
	if !errors.Is(err, driverErr) {
		t.Fatalf("driver error not wrapped verbatim: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestWriteErrorSurfacesWrapped(t *testing.T) {
	st, mock := newMockStore(t)

	driverErr := errors.New("violates foreign key constraint")
	mock.ExpectExec(`UPDATE "users"`).WillReturnError(driverErr)

	_, err := st.AdjustUserCoinBalance(uuid.New(), 5)
	if !errors.Is(err, driverErr) {
		t.Fatalf("driver error not wrapped verbatim: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
