package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the GORM handle shared by the catalog, cart and order
// repositories and knows how to rebind itself to a transaction.
type Base struct {
	db *gorm.DB
}

// NewBase wraps the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the handle bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Rebind returns a Base backed by tx when tx is non-nil, keeping the
// original handle otherwise. Repositories build their WithTx on it.
func (b Base) Rebind(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}
