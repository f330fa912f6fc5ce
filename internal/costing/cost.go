package costing

// CostMode selects how a dish's ingredient lines are costed.
type CostMode int

const (
	// ModeUnitAware converts the dish quantity into the purchase unit, prices
	// ingredient waste into the unit price and applies plate wastage on top.
	// It backs the live dish builder.
	ModeUnitAware CostMode = iota
	// ModeLegacy assumes quantity and price already share a unit and adds
	// waste as a surcharge on each line. It backs already saved records.
	ModeLegacy
)

func (m CostMode) String() string {
	if m == ModeLegacy {
		return "legacy"
	}
	return "unit_aware"
}

func (m CostMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseCostMode maps "legacy" to ModeLegacy and anything else to ModeUnitAware.
func ParseCostMode(raw string) CostMode {
	if raw == "legacy" {
		return ModeLegacy
	}
	return ModeUnitAware
}

// QuantityInPurchaseUnit expresses the line quantity in the unit the ingredient is bought in.
func QuantityInPurchaseUnit(line IngredientLine) float64 {
	return line.QuantityInDish * ConversionFactor(line.DishUnit, line.PurchaseUnit)
}

// EffectiveUnitPrice is the purchase price spread over the usable share.
// Waste of 100% or more falls back to the plain purchase price.
func EffectiveUnitPrice(price, wastagePercent float64) float64 {
	usable := 1 - wastagePercent/100
	if usable <= 0 {
		return price
	}
	return price / usable
}

// IngredientCost is the cost of one recipe line under unit conversion and ingredient waste.
func IngredientCost(line IngredientLine) float64 {
	return QuantityInPurchaseUnit(line) * EffectiveUnitPrice(line.PricePerPurchaseUnit, line.IngredientWastage)
}

// complete reports whether a line has enough data to be costed.
func complete(line IngredientLine) bool {
	return line.PricePerPurchaseUnit > 0 && line.QuantityInDish > 0
}

// DishIngredientsCost sums IngredientCost over the lines. Incomplete lines count as zero.
func DishIngredientsCost(d Dish) float64 {
	total := 0.0
	for _, line := range d.Lines {
		if !complete(line) {
			continue
		}
		total += IngredientCost(line)
	}
	return total
}

// DishFinalCost applies plate wastage on top of the waste-adjusted ingredient cost.
func DishFinalCost(d Dish) float64 {
	return DishIngredientsCost(d) * (1 + d.WastagePercent/100)
}

// LegacyLineCost is quantity * price plus waste as a surcharge, without unit conversion.
func LegacyLineCost(line IngredientLine) float64 {
	return line.QuantityInDish * line.PricePerPurchaseUnit * (1 + line.IngredientWastage/100)
}

// LegacyDishCost sums LegacyLineCost over the lines. Plate wastage is not applied.
func LegacyDishCost(d Dish) float64 {
	total := 0.0
	for _, line := range d.Lines {
		total += LegacyLineCost(line)
	}
	return total
}

// DishCost returns the dish cost under the given mode.
func DishCost(d Dish, mode CostMode) float64 {
	if mode == ModeLegacy {
		return LegacyDishCost(d)
	}
	return DishFinalCost(d)
}
