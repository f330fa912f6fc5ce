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

// Dish is a saved menu item with its recipe.
type Dish struct {
	ID                string           `db:"id" json:"id"`
	CategoryID        string           `db:"category_id" json:"category_id"`
	Name              string           `db:"name" json:"name"`
	Price             float64          `db:"price" json:"price"`
	WastagePercentage float64          `db:"wastage_percentage" json:"wastage_percentage"`
	Description       string           `db:"description" json:"description"`
	Preparation       string           `db:"preparation" json:"preparation"`
	Ingredients       []DishIngredient `db:"-" json:"ingredients"`
}

// DishIngredient is a recipe line joined with its inventory item. Quantity is
// expressed in Unit, the purchase unit at save time; DishQuantity and DishUnit
// are what the recipe was written in.
type DishIngredient struct {
	ID              string       `db:"id" json:"id"`
	DishID          string       `db:"dish_id" json:"-"`
	InventoryItemID string       `db:"inventory_item_id" json:"inventory_item_id"`
	Name            string       `db:"name" json:"name"`
	PurchaseUnit    costing.Unit `db:"purchase_unit" json:"purchase_unit"`
	PricePerUnit    float64      `db:"price_per_unit" json:"price_per_unit"`
	Quantity        float64      `db:"quantity" json:"quantity"`
	Unit            costing.Unit `db:"unit" json:"unit"`
	DishQuantity    float64      `db:"dish_quantity" json:"dish_quantity"`
	DishUnit        costing.Unit `db:"dish_unit" json:"dish_unit"`
	WastePercentage float64      `db:"waste_percentage" json:"waste_percentage"`
	Position        int          `db:"position" json:"position"`
}

// ToCosting converts d for the costing engine. Legacy lines use the quantity
// stored in the purchase unit, rescaled when the inventory item has since moved
// to another unit of the same family; unit-aware lines convert the recipe
// quantity against the current inventory unit. Both are priced from current inventory.
func (d Dish) ToCosting(mode costing.CostMode) costing.Dish {
	lines := make([]costing.IngredientLine, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		line := costing.IngredientLine{
			Name:                 ing.Name,
			PurchaseUnit:         ing.PurchaseUnit,
			PricePerPurchaseUnit: ing.PricePerUnit,
			IngredientWastage:    ing.WastePercentage,
		}
		if mode == costing.ModeLegacy {
			line.DishUnit = ing.PurchaseUnit
			line.QuantityInDish = ing.Quantity * costing.ConversionFactor(ing.Unit, ing.PurchaseUnit)
		} else {
			line.DishUnit = ing.DishUnit
			line.QuantityInDish = ing.DishQuantity
		}
		lines = append(lines, line)
	}
	return costing.Dish{
		ID:             d.ID,
		Name:           d.Name,
		Price:          d.Price,
		WastagePercent: d.WastagePercentage,
		Lines:          lines,
		CategoryID:     d.CategoryID,
	}
}

// DishInput is a dish as submitted by the builder. An empty ID creates a dish.
// TaxPercent, when set, becomes the account tax.
type DishInput struct {
	CategoryID        string            `json:"category_id"`
	Name              string            `json:"name"`
	Price             float64           `json:"price"`
	WastagePercentage float64           `json:"wastage_percentage"`
	Description       string            `json:"description"`
	Preparation       string            `json:"preparation"`
	Ingredients       []IngredientInput `json:"ingredients"`
	TaxPercent        *float64          `json:"tax_percentage"`
}

// IngredientInput is one builder line. Quantity is in DishUnit, which defaults
// to the purchase unit.
type IngredientInput struct {
	InventoryItemID string  `json:"inventory_item_id"`
	Name            string  `json:"name"`
	PurchaseUnit    string  `json:"purchase_unit"`
	PricePerUnit    float64 `json:"price_per_unit"`
	Quantity        float64 `json:"quantity"`
	DishUnit        string  `json:"dish_unit"`
	WastePercentage float64 `json:"waste_percentage"`
}

func (in DishInput) validate() (DishInput, error) {
	var err error
	if in.Name, err = requireText(in.Name, "name"); err != nil {
		return in, err
	}
	if in.CategoryID, err = requireText(in.CategoryID, "category_id"); err != nil {
		return in, err
	}
	if err := requireNonNegative(in.Price, "price"); err != nil {
		return in, err
	}
	if err := requirePercentBelow100(in.WastagePercentage, "wastage_percentage"); err != nil {
		return in, err
	}
	if in.TaxPercent != nil {
		if err := requirePercent(*in.TaxPercent, "tax_percentage"); err != nil {
			return in, err
		}
	}
	in.Description = strings.TrimSpace(in.Description)
	in.Preparation = strings.TrimSpace(in.Preparation)

	for i, ing := range in.Ingredients {
		field := fmt.Sprintf("ingredients[%d]", i)
		if err := requireNonNegative(ing.Quantity, field+".quantity"); err != nil {
			return in, err
		}
		if err := requirePercentBelow100(ing.WastePercentage, field+".waste_percentage"); err != nil {
			return in, err
		}
		if ing.DishUnit != "" {
			if _, err := requireUnit(ing.DishUnit, field+".dish_unit"); err != nil {
				return in, err
			}
		}
	}
	return in, nil
}

const dishColumns = `id, category_id, name, price, wastage_percentage, description, preparation`

const dishIngredientQuery = `
	SELECT di.id, di.dish_id, di.inventory_item_id, ii.name, ii.unit AS purchase_unit,
		ii.price_per_unit, di.quantity, di.unit, di.dish_quantity, di.dish_unit,
		di.waste_percentage, di.position
	FROM dish_ingredients di
	JOIN inventory_items ii ON ii.id = di.inventory_item_id
`

// ListDishes returns every dish of the user with its ingredients.
func (s *Store) ListDishes(ctx context.Context, userID string) ([]Dish, error) {
	return s.listDishes(ctx, s.db, userID)
}

func (s *Store) listDishes(ctx context.Context, q sqlx.QueryerContext, userID string) ([]Dish, error) {
	dishes := []Dish{}
	if err := sqlx.SelectContext(ctx, q, &dishes, `
		SELECT `+dishColumns+` FROM dishes WHERE user_id = ? ORDER BY created_at ASC, id ASC
	`, userID); err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}

	var lines []DishIngredient
	if err := sqlx.SelectContext(ctx, q, &lines, dishIngredientQuery+`
		WHERE di.user_id = ?
		ORDER BY di.dish_id, di.position ASC
	`, userID); err != nil {
		return nil, fmt.Errorf("list dish ingredients: %w", err)
	}

	byDish := make(map[string][]DishIngredient, len(dishes))
	for _, line := range lines {
		byDish[line.DishID] = append(byDish[line.DishID], line)
	}
	for i := range dishes {
		dishes[i].Ingredients = byDish[dishes[i].ID]
		if dishes[i].Ingredients == nil {
			dishes[i].Ingredients = []DishIngredient{}
		}
	}
	return dishes, nil
}

// GetDish returns one dish with its ingredients or ErrNotFound.
func (s *Store) GetDish(ctx context.Context, userID, id string) (Dish, error) {
	var d Dish
	err := s.db.GetContext(ctx, &d, `SELECT `+dishColumns+` FROM dishes WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Dish{}, ErrNotFound
	}
	if err != nil {
		return Dish{}, fmt.Errorf("query dish: %w", err)
	}

	d.Ingredients = []DishIngredient{}
	if err := s.db.SelectContext(ctx, &d.Ingredients, dishIngredientQuery+`
		WHERE di.user_id = ? AND di.dish_id = ?
		ORDER BY di.position ASC
	`, userID, id); err != nil {
		return Dish{}, fmt.Errorf("query dish ingredients: %w", err)
	}
	return d, nil
}

// SaveDish creates (empty id) or replaces a dish. Ingredient lines are
// resolved against inventory and rewritten in one transaction.
func (s *Store) SaveDish(ctx context.Context, userID, id string, in DishInput) (Dish, error) {
	in, err := in.validate()
	if err != nil {
		return Dish{}, err
	}

	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		var owned bool
		if err := tx.GetContext(ctx, &owned, `SELECT EXISTS(SELECT 1 FROM menu_categories WHERE user_id = ? AND id = ?)`, userID, in.CategoryID); err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if !owned {
			return invalid("category_id", "category_id no existe")
		}

		if id == "" {
			id = uuid.NewString()
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO dishes (id, user_id, category_id, name, price, wastage_percentage, description, preparation)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, id, userID, in.CategoryID, in.Name, in.Price, in.WastagePercentage, in.Description, in.Preparation); err != nil {
				return fmt.Errorf("insert dish: %w", err)
			}
		} else {
			res, err := tx.ExecContext(ctx, `
				UPDATE dishes
				SET category_id = ?, name = ?, price = ?, wastage_percentage = ?, description = ?, preparation = ?,
					updated_at = CURRENT_TIMESTAMP
				WHERE user_id = ? AND id = ?
			`, in.CategoryID, in.Name, in.Price, in.WastagePercentage, in.Description, in.Preparation, userID, id)
			if err != nil {
				return fmt.Errorf("update dish: %w", err)
			}
			if err := expectOneRow(res); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM dish_ingredients WHERE user_id = ? AND dish_id = ?`, userID, id); err != nil {
			return fmt.Errorf("clear dish ingredients: %w", err)
		}
		for i, ing := range in.Ingredients {
			if err := s.insertDishIngredient(ctx, tx, userID, id, i, ing); err != nil {
				return err
			}
		}

		if in.TaxPercent != nil {
			if _, err := s.syncTax(ctx, tx, userID, *in.TaxPercent); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Dish{}, err
	}
	return s.GetDish(ctx, userID, id)
}

func (s *Store) insertDishIngredient(ctx context.Context, tx *sqlx.Tx, userID, dishID string, position int, ing IngredientInput) error {
	item, err := s.ensureInventoryItem(ctx, tx, userID, ing.InventoryItemID, InventoryInput{
		Name:         ing.Name,
		Unit:         ing.PurchaseUnit,
		PricePerUnit: ing.PricePerUnit,
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Field = fmt.Sprintf("ingredients[%d].%s", position, verr.Field)
		}
		return err
	}

	dishUnit := item.Unit
	if ing.DishUnit != "" {
		dishUnit, _ = costing.ParseUnit(ing.DishUnit)
	}
	line := costing.LineFromInventory(item.ToCosting(), dishUnit, ing.Quantity, ing.WastePercentage)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dish_ingredients
			(id, user_id, dish_id, inventory_item_id, position, quantity, unit, dish_quantity, dish_unit, waste_percentage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), userID, dishID, item.ID, position,
		costing.QuantityInPurchaseUnit(line), string(item.Unit), line.QuantityInDish, string(line.DishUnit), line.IngredientWastage)
	if err != nil {
		return fmt.Errorf("insert dish ingredient: %w", err)
	}
	return nil
}

// DeleteDish removes a dish and its ingredient lines.
func (s *Store) DeleteDish(ctx context.Context, userID, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM dish_ingredients WHERE user_id = ? AND dish_id = ?`, userID, id); err != nil {
			return fmt.Errorf("delete dish ingredients: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM dishes WHERE user_id = ? AND id = ?`, userID, id)
		if err != nil {
			return fmt.Errorf("delete dish: %w", err)
		}
		return expectOneRow(res)
	})
}
