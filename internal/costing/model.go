// Package costing turns ingredient purchase data into dish cost, margin and
// category profitability figures.
//
// Every function is pure and total: inputs are value snapshots, outputs are
// raw numbers, and no numeric edge case panics or yields NaN or Inf for finite
// inputs. Degenerate data maps to an obviously wrong looking but defined value
// (zero cost for incomplete lines, zero margin for a non-positive price).
// Range validation of raw inputs belongs to the form layer.
package costing

// IngredientLine is one ingredient usage inside a dish.
type IngredientLine struct {
	Name                 string
	PurchaseUnit         Unit
	PricePerPurchaseUnit float64
	DishUnit             Unit
	QuantityInDish       float64
	// IngredientWastage is the percent of the purchased quantity lost before use.
	IngredientWastage float64
}

// Dish is a menu item with its recipe.
type Dish struct {
	ID   string
	Name string
	// Price is the public sale price, tax included.
	Price          float64
	WastagePercent float64
	Lines          []IngredientLine
	CategoryID     string
}

// Category groups dishes on the menu.
type Category struct {
	ID     string
	Label  string
	Hidden bool
	Target *Target
}

// TaxContext carries the account-wide tax applied to public prices.
type TaxContext struct {
	TaxPercent float64
}

// InventoryItem is the master record of an ingredient as it is bought.
type InventoryItem struct {
	ID           string
	Name         string
	Unit         Unit
	PricePerUnit float64
}

// LineFromInventory builds a recipe line priced from an inventory record.
func LineFromInventory(item InventoryItem, dishUnit Unit, quantity, wastage float64) IngredientLine {
	if dishUnit == "" {
		dishUnit = item.Unit
	}
	return IngredientLine{
		Name:                 item.Name,
		PurchaseUnit:         item.Unit,
		PricePerPurchaseUnit: item.PricePerUnit,
		DishUnit:             dishUnit,
		QuantityInDish:       quantity,
		IngredientWastage:    wastage,
	}
}
