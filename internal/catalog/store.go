// Package catalog persists users, settings, menu categories, inventory items
// and dishes, and hands the costing engine consistent snapshots of them.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Options carries account defaults applied when settings are first created.
type Options struct {
	DefaultCurrency   string
	DefaultTaxPercent float64
}

// Store is the SQLite-backed catalog. Every method is scoped to one user.
type Store struct {
	db   *sqlx.DB
	opts Options
}

// New returns a Store over db.
func New(db *sqlx.DB, opts Options) *Store {
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "MXN"
	}
	return &Store{db: db, opts: opts}
}

// withTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
