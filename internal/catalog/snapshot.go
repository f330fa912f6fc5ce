package catalog

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/menucost/internal/costing"
)

// Snapshot is a consistent read of everything the costing engine needs for one user.
type Snapshot struct {
	Settings   Settings
	Categories []Category
	Inventory  []InventoryItem
	Dishes     []Dish
}

// Snapshot reads the user's catalog in a single transaction.
func (s *Store) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	var snap Snapshot
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		st, err := s.effectiveSettings(ctx, tx, userID)
		if err != nil {
			return err
		}
		snap.Settings = st

		if snap.Categories, err = s.listCategories(ctx, tx, userID); err != nil {
			return err
		}
		if err := tx.SelectContext(ctx, &snap.Inventory, `
			SELECT `+inventoryColumns+` FROM inventory_items WHERE user_id = ? ORDER BY name COLLATE NOCASE ASC, id ASC
		`, userID); err != nil {
			return err
		}
		snap.Dishes, err = s.listDishes(ctx, tx, userID)
		return err
	})
	return snap, err
}

// Tax returns the account tax context.
func (s Snapshot) Tax() costing.TaxContext {
	return costing.TaxContext{TaxPercent: s.Settings.TaxPercentage}
}

// CostingDishes converts every dish for mode.
func (s Snapshot) CostingDishes(mode costing.CostMode) []costing.Dish {
	out := make([]costing.Dish, 0, len(s.Dishes))
	for _, d := range s.Dishes {
		out = append(out, d.ToCosting(mode))
	}
	return out
}

// CostingCategories converts every category.
func (s Snapshot) CostingCategories() []costing.Category {
	out := make([]costing.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		out = append(out, c.ToCosting())
	}
	return out
}

// CostingInventory converts every inventory item.
func (s Snapshot) CostingInventory() []costing.InventoryItem {
	out := make([]costing.InventoryItem, 0, len(s.Inventory))
	for _, item := range s.Inventory {
		out = append(out, item.ToCosting())
	}
	return out
}
