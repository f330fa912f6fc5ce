package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/menucost/internal/catalog"
)

type defaultCategory struct {
	Name  string
	Emoji string
}

var defaultCategories = []defaultCategory{
	{Name: "Entradas", Emoji: "🥗"},
	{Name: "Platos fuertes", Emoji: "🍽️"},
	{Name: "Postres", Emoji: "🍰"},
	{Name: "Bebidas", Emoji: "🥤"},
}

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	Currency      string
	TaxPercent    float64
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sqlx.DB, cfg Config) (Stats, error) {
	if cfg.Currency == "" {
		cfg.Currency = "MXN"
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	adminID, err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats)
	if err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if adminID != "" {
		if err := ensureSettings(ctx, tx, adminID, cfg, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
		for i, c := range defaultCategories {
			if err := ensureCategory(ctx, tx, adminID, i, c, &stats); err != nil {
				_ = tx.Rollback()
				return Stats{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// seedAdmin returns the admin user id, creating the user when missing.
// An empty id means no admin is configured.
func seedAdmin(ctx context.Context, tx *sqlx.Tx, email, password string, stats *Stats) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil
	}

	var ids []string
	if err := tx.SelectContext(ctx, &ids, `SELECT id FROM users WHERE email = ? LIMIT 1`, email); err != nil {
		return "", fmt.Errorf("check admin user existence: %w", err)
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	hash, err := catalog.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`, id, email, hash); err != nil {
		return "", fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return id, nil
}

func ensureSettings(ctx context.Context, tx *sqlx.Tx, userID string, cfg Config, stats *Stats) error {
	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM user_settings WHERE user_id = ?)`, userID); err != nil {
		return fmt.Errorf("check admin settings existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, user_name, currency, tax_percentage)
		VALUES (?, ?, ?, ?)
	`, userID, "Administrador", cfg.Currency, cfg.TaxPercent); err != nil {
		return fmt.Errorf("insert admin settings: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureCategory(ctx context.Context, tx *sqlx.Tx, userID string, position int, c defaultCategory, stats *Stats) error {
	var exists bool
	if err := tx.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1
			FROM menu_categories
			WHERE user_id = ? AND name = ?
			LIMIT 1
		)
	`, userID, c.Name); err != nil {
		return fmt.Errorf("check category %q existence: %w", c.Name, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO menu_categories (id, user_id, name, emoji, position)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), userID, c.Name, c.Emoji, position); err != nil {
		return fmt.Errorf("insert category %q: %w", c.Name, err)
	}
	stats.Inserts++
	return nil
}
