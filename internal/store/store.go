package store

import (
	"errors"

	"gorm.io/gorm"
)

// Not-found sentinels returned by write operations whose target row does not
// exist. Plain single-row reads report a miss as (nil, nil) instead.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrMessageNotFound     = errors.New("message not found")
)

// Store is the entity store: typed CRUD over the relational schema on an
// injected database handle. It holds no business rules.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for supporting infrastructure (health
// checks, auth token storage).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// WithTx rebinds the store to a transaction handle.
func (s *Store) WithTx(tx *gorm.DB) *Store {
	return &Store{db: tx}
}

// Transaction runs fn against a tx-bound store inside a single database
// transaction. Any error from fn rolls the whole unit back.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(s.WithTx(tx))
	})
}
