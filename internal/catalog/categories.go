package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/menucost/internal/costing"
)

const defaultCategoryEmoji = "🍽️"

// Category is a menu section as stored.
type Category struct {
	ID                     string          `db:"id" json:"id"`
	Name                   string          `db:"name" json:"name"`
	Emoji                  string          `db:"emoji" json:"emoji"`
	Hidden                 bool            `db:"is_hidden" json:"is_hidden"`
	TargetCostPercentage   sql.NullFloat64 `db:"target_cost_percentage" json:"-"`
	TargetMarginPercentage sql.NullFloat64 `db:"target_margin_percentage" json:"-"`
	Position               int             `db:"position" json:"position"`
}

// Target returns the category goal, if any.
func (c Category) Target() *costing.Target {
	switch {
	case c.TargetCostPercentage.Valid:
		t := costing.TargetFromCost(c.TargetCostPercentage.Float64)
		return &t
	case c.TargetMarginPercentage.Valid:
		t := costing.TargetFromMargin(c.TargetMarginPercentage.Float64)
		return &t
	}
	return nil
}

// ToCosting converts c for the costing engine.
func (c Category) ToCosting() costing.Category {
	return costing.Category{ID: c.ID, Label: c.Name, Hidden: c.Hidden, Target: c.Target()}
}

// CategoryInput is the editable part of a category. TargetType is "cost" or
// "margin"; the complementary percentage is derived and stored alongside.
type CategoryInput struct {
	Name        string   `json:"name"`
	Emoji       string   `json:"emoji"`
	TargetType  string   `json:"target_type"`
	TargetValue *float64 `json:"target_value"`
}

func (in CategoryInput) normalize() (CategoryInput, *costing.Target, error) {
	name, err := requireText(in.Name, "name")
	if err != nil {
		return in, nil, err
	}
	in.Name = name
	if in.Emoji == "" {
		in.Emoji = defaultCategoryEmoji
	}

	if in.TargetValue == nil {
		return in, nil, nil
	}
	if err := requirePercent(*in.TargetValue, "target_value"); err != nil {
		return in, nil, err
	}
	var t costing.Target
	switch in.TargetType {
	case "cost":
		t = costing.TargetFromCost(*in.TargetValue)
	case "margin":
		t = costing.TargetFromMargin(*in.TargetValue)
	default:
		return in, nil, invalid("target_type", "target_type debe ser cost o margin")
	}
	return in, &t, nil
}

func targetColumns(t *costing.Target) (cost, margin sql.NullFloat64) {
	if t == nil {
		return cost, margin
	}
	return sql.NullFloat64{Float64: t.CostPercent, Valid: true}, sql.NullFloat64{Float64: t.MarginPercent, Valid: true}
}

const categoryColumns = `id, name, emoji, is_hidden, target_cost_percentage, target_margin_percentage, position`

// ListCategories returns the user's categories in menu order.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]Category, error) {
	return s.listCategories(ctx, s.db, userID)
}

func (s *Store) listCategories(ctx context.Context, q sqlx.QueryerContext, userID string) ([]Category, error) {
	cats := []Category{}
	err := sqlx.SelectContext(ctx, q, &cats, `
		SELECT `+categoryColumns+`
		FROM menu_categories
		WHERE user_id = ?
		ORDER BY position ASC, created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// GetCategory returns one category or ErrNotFound.
func (s *Store) GetCategory(ctx context.Context, userID, id string) (Category, error) {
	var c Category
	err := s.db.GetContext(ctx, &c, `SELECT `+categoryColumns+` FROM menu_categories WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("query category: %w", err)
	}
	return c, nil
}

// CreateCategory appends a category at the end of the menu.
func (s *Store) CreateCategory(ctx context.Context, userID string, in CategoryInput) (Category, error) {
	in, target, err := in.normalize()
	if err != nil {
		return Category{}, err
	}
	cost, margin := targetColumns(target)
	c := Category{
		ID:                     uuid.NewString(),
		Name:                   in.Name,
		Emoji:                  in.Emoji,
		TargetCostPercentage:   cost,
		TargetMarginPercentage: margin,
	}

	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &c.Position, `SELECT COALESCE(MAX(position) + 1, 0) FROM menu_categories WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("next category position: %w", err)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO menu_categories (id, user_id, name, emoji, target_cost_percentage, target_margin_percentage, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, userID, c.Name, c.Emoji, c.TargetCostPercentage, c.TargetMarginPercentage, c.Position)
		if err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		return nil
	})
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

// UpdateCategory replaces the name, emoji and target of a category.
func (s *Store) UpdateCategory(ctx context.Context, userID, id string, in CategoryInput) (Category, error) {
	in, target, err := in.normalize()
	if err != nil {
		return Category{}, err
	}
	cost, margin := targetColumns(target)

	res, err := s.db.ExecContext(ctx, `
		UPDATE menu_categories
		SET name = ?, emoji = ?, target_cost_percentage = ?, target_margin_percentage = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, in.Name, in.Emoji, cost, margin, userID, id)
	if err != nil {
		return Category{}, fmt.Errorf("update category: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return Category{}, err
	}
	return s.GetCategory(ctx, userID, id)
}

// SetCategoryHidden hides or shows a category on the menu dashboard.
func (s *Store) SetCategoryHidden(ctx context.Context, userID, id string, hidden bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE menu_categories SET is_hidden = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, hidden, userID, id)
	if err != nil {
		return fmt.Errorf("update category visibility: %w", err)
	}
	return expectOneRow(res)
}

// DeleteCategory removes a category and, by cascade, its dishes.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM menu_categories WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
