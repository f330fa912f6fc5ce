package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/menucost/internal/costing"
)

const defaultInventoryCategory = "Ingrediente"

// InventoryItem is an ingredient as it is bought.
type InventoryItem struct {
	ID           string       `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Unit         costing.Unit `db:"unit" json:"unit"`
	PricePerUnit float64      `db:"price_per_unit" json:"price_per_unit"`
	Category     string       `db:"category" json:"category"`
	Emoji        string       `db:"emoji" json:"emoji,omitempty"`
}

// ToCosting converts item for the costing engine.
func (i InventoryItem) ToCosting() costing.InventoryItem {
	return costing.InventoryItem{ID: i.ID, Name: i.Name, Unit: i.Unit, PricePerUnit: i.PricePerUnit}
}

// InventoryInput is the editable part of an inventory item.
type InventoryInput struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Category     string  `json:"category"`
	Emoji        string  `json:"emoji"`
}

func (in InventoryInput) validate() (InventoryItem, error) {
	name, err := requireText(in.Name, "name")
	if err != nil {
		return InventoryItem{}, err
	}
	unit, err := requireUnit(in.Unit, "unit")
	if err != nil {
		return InventoryItem{}, err
	}
	if err := requireNonNegative(in.PricePerUnit, "price_per_unit"); err != nil {
		return InventoryItem{}, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultInventoryCategory
	}
	return InventoryItem{
		Name:         name,
		Unit:         unit,
		PricePerUnit: in.PricePerUnit,
		Category:     category,
		Emoji:        strings.TrimSpace(in.Emoji),
	}, nil
}

const inventoryColumns = `id, name, unit, price_per_unit, category, COALESCE(emoji, '') AS emoji`

// ListInventory returns the user's inventory sorted by name.
func (s *Store) ListInventory(ctx context.Context, userID string) ([]InventoryItem, error) {
	items := []InventoryItem{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE user_id = ?
		ORDER BY name COLLATE NOCASE ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

// GetInventoryItem returns one item or ErrNotFound.
func (s *Store) GetInventoryItem(ctx context.Context, userID, id string) (InventoryItem, error) {
	return s.getInventoryItem(ctx, s.db, userID, id)
}

func (s *Store) getInventoryItem(ctx context.Context, q sqlx.QueryerContext, userID, id string) (InventoryItem, error) {
	var item InventoryItem
	err := sqlx.GetContext(ctx, q, &item, `SELECT `+inventoryColumns+` FROM inventory_items WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return InventoryItem{}, ErrNotFound
	}
	if err != nil {
		return InventoryItem{}, fmt.Errorf("query inventory item: %w", err)
	}
	return item, nil
}

// CreateInventoryItem stores a new item.
func (s *Store) CreateInventoryItem(ctx context.Context, userID string, in InventoryInput) (InventoryItem, error) {
	item, err := in.validate()
	if err != nil {
		return InventoryItem{}, err
	}
	item.ID = uuid.NewString()
	if err := insertInventoryItem(ctx, s.db, userID, item); err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

func insertInventoryItem(ctx context.Context, e sqlx.ExecerContext, userID string, item InventoryItem) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO inventory_items (id, user_id, name, unit, price_per_unit, category, emoji)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, item.ID, userID, item.Name, string(item.Unit), item.PricePerUnit, item.Category, item.Emoji)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// UpdateInventoryItem replaces an item. Dishes pick up the new price on their next costing.
func (s *Store) UpdateInventoryItem(ctx context.Context, userID, id string, in InventoryInput) (InventoryItem, error) {
	item, err := in.validate()
	if err != nil {
		return InventoryItem{}, err
	}
	item.ID = id

	res, err := s.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET name = ?, unit = ?, price_per_unit = ?, category = ?, emoji = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, item.Name, string(item.Unit), item.PricePerUnit, item.Category, item.Emoji, userID, id)
	if err != nil {
		return InventoryItem{}, fmt.Errorf("update inventory item: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

// DeleteInventoryItem removes an item no dish uses, or returns ErrInUse.
func (s *Store) DeleteInventoryItem(ctx context.Context, userID, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var uses int
		if err := tx.GetContext(ctx, &uses, `SELECT COUNT(*) FROM dish_ingredients WHERE user_id = ? AND inventory_item_id = ?`, userID, id); err != nil {
			return fmt.Errorf("count inventory usage: %w", err)
		}
		if uses > 0 {
			return ErrInUse
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM inventory_items WHERE user_id = ? AND id = ?`, userID, id)
		if err != nil {
			return fmt.Errorf("delete inventory item: %w", err)
		}
		return expectOneRow(res)
	})
}

// EnsureInventoryItem resolves a recipe ingredient to an inventory record. It
// matches by id first, then by name (case-insensitive) and unit, and creates
// the item otherwise. A matched item takes the incoming unit and price when
// they differ.
func (s *Store) EnsureInventoryItem(ctx context.Context, userID string, id string, in InventoryInput) (InventoryItem, error) {
	var out InventoryItem
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		out, err = s.ensureInventoryItem(ctx, tx, userID, id, in)
		return err
	})
	return out, err
}

func (s *Store) ensureInventoryItem(ctx context.Context, tx *sqlx.Tx, userID, id string, in InventoryInput) (InventoryItem, error) {
	want, err := in.validate()
	if err != nil {
		return InventoryItem{}, err
	}

	var found InventoryItem
	err = sql.ErrNoRows
	if id != "" {
		err = tx.GetContext(ctx, &found, `SELECT `+inventoryColumns+` FROM inventory_items WHERE user_id = ? AND id = ?`, userID, id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.GetContext(ctx, &found, `
			SELECT `+inventoryColumns+`
			FROM inventory_items
			WHERE user_id = ? AND lower(name) = lower(?) AND unit = ?
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		`, userID, want.Name, string(want.Unit))
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		want.ID = uuid.NewString()
		if err := insertInventoryItem(ctx, tx, userID, want); err != nil {
			return InventoryItem{}, err
		}
		return want, nil
	case err != nil:
		return InventoryItem{}, fmt.Errorf("find inventory item: %w", err)
	}

	if found.Unit == want.Unit && found.PricePerUnit == want.PricePerUnit {
		return found, nil
	}
	found.Unit = want.Unit
	found.PricePerUnit = want.PricePerUnit
	if _, err := tx.ExecContext(ctx, `
		UPDATE inventory_items SET unit = ?, price_per_unit = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, string(found.Unit), found.PricePerUnit, userID, found.ID); err != nil {
		return InventoryItem{}, fmt.Errorf("update inventory item: %w", err)
	}
	return found, nil
}
