package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (username, email, follow edge, like edge). Callers treat
// it as a normal rejected-request outcome, not a failure.
var ErrDuplicate = errors.New("duplicate record")

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn inside a single database transaction. The
// repository passed to fn is bound to that transaction.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// translateCreateError maps storage-level conflicts to ErrDuplicate
func translateCreateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
