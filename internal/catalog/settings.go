package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Settings are the account-wide preferences, including the tax every dish is priced under.
type Settings struct {
	UserID        string  `db:"user_id" json:"-"`
	UserName      string  `db:"user_name" json:"user_name"`
	Currency      string  `db:"currency" json:"currency"`
	Country       string  `db:"country" json:"country"`
	BusinessType  string  `db:"business_type" json:"business_type"`
	TaxPercentage float64 `db:"tax_percentage" json:"tax_percentage"`
}

// SettingsUpdate is a partial update; nil fields are left unchanged.
type SettingsUpdate struct {
	UserName      *string  `json:"user_name"`
	Currency      *string  `json:"currency"`
	Country       *string  `json:"country"`
	BusinessType  *string  `json:"business_type"`
	TaxPercentage *float64 `json:"tax_percentage"`
}

const settingsColumns = `user_id, user_name, currency, country, business_type, tax_percentage`

// GetSettings returns the user's settings or ErrNotFound.
func (s *Store) GetSettings(ctx context.Context, userID string) (Settings, error) {
	return s.getSettings(ctx, s.db, userID)
}

func (s *Store) getSettings(ctx context.Context, q sqlx.QueryerContext, userID string) (Settings, error) {
	var st Settings
	err := sqlx.GetContext(ctx, q, &st, `SELECT `+settingsColumns+` FROM user_settings WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, ErrNotFound
	}
	if err != nil {
		return Settings{}, fmt.Errorf("query user settings: %w", err)
	}
	return st, nil
}

// EffectiveSettings returns the user's settings, or the store defaults when
// none are saved yet. Every costing path reads tax through it.
func (s *Store) EffectiveSettings(ctx context.Context, userID string) (Settings, error) {
	return s.effectiveSettings(ctx, s.db, userID)
}

func (s *Store) effectiveSettings(ctx context.Context, q sqlx.QueryerContext, userID string) (Settings, error) {
	st, err := s.getSettings(ctx, q, userID)
	if errors.Is(err, ErrNotFound) {
		return s.defaultSettings(userID), nil
	}
	return st, err
}

func (s *Store) defaultSettings(userID string) Settings {
	return Settings{UserID: userID, UserName: "Usuario", Currency: s.opts.DefaultCurrency, TaxPercentage: s.opts.DefaultTaxPercent}
}

// UpdateSettings applies u, creating the settings row with defaults when it does not exist yet.
func (s *Store) UpdateSettings(ctx context.Context, userID string, u SettingsUpdate) (Settings, error) {
	var out Settings
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		st, err := s.getSettings(ctx, tx, userID)
		switch {
		case errors.Is(err, ErrNotFound):
			st = s.defaultSettings(userID)
		case err != nil:
			return err
		}

		if u.UserName != nil {
			if st.UserName, err = requireText(*u.UserName, "user_name"); err != nil {
				return err
			}
		}
		if u.Currency != nil {
			if st.Currency, err = requireText(strings.ToUpper(*u.Currency), "currency"); err != nil {
				return err
			}
		}
		if u.Country != nil {
			st.Country = strings.TrimSpace(*u.Country)
		}
		if u.BusinessType != nil {
			st.BusinessType = strings.TrimSpace(*u.BusinessType)
		}
		if u.TaxPercentage != nil {
			if err := requirePercent(*u.TaxPercentage, "tax_percentage"); err != nil {
				return err
			}
			st.TaxPercentage = *u.TaxPercentage
		}

		if err := s.insertSettings(ctx, tx, st); err != nil {
			return err
		}
		out = st
		return nil
	})
	return out, err
}

// SyncTax stores tax as the account tax when it differs from the current value,
// so settings always hold the most recently used tax. It reports whether a write happened.
func (s *Store) SyncTax(ctx context.Context, userID string, tax float64) (bool, error) {
	var changed bool
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		changed, err = s.syncTax(ctx, tx, userID, tax)
		return err
	})
	return changed, err
}

func (s *Store) syncTax(ctx context.Context, tx *sqlx.Tx, userID string, tax float64) (bool, error) {
	if err := requirePercent(tax, "tax_percentage"); err != nil {
		return false, err
	}

	st, err := s.getSettings(ctx, tx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		st = Settings{UserID: userID, UserName: "Usuario", Currency: s.opts.DefaultCurrency}
	case err != nil:
		return false, err
	case st.TaxPercentage == tax:
		return false, nil
	}

	st.TaxPercentage = tax
	if err := s.insertSettings(ctx, tx, st); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) insertSettings(ctx context.Context, tx *sqlx.Tx, st Settings) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO user_settings (`+settingsColumns+`)
		VALUES (:user_id, :user_name, :currency, :country, :business_type, :tax_percentage)
		ON CONFLICT(user_id) DO UPDATE SET
			user_name = excluded.user_name,
			currency = excluded.currency,
			country = excluded.country,
			business_type = excluded.business_type,
			tax_percentage = excluded.tax_percentage,
			updated_at = CURRENT_TIMESTAMP
	`, st)
	if err != nil {
		return fmt.Errorf("upsert user settings: %w", err)
	}
	return nil
}
