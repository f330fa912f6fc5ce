package costing

// LineBreakdown is one ingredient's contribution to a dish.
type LineBreakdown struct {
	Name        string  `json:"name"`
	BaseCost    float64 `json:"base_cost"`
	WasteAmount float64 `json:"waste_amount"`
	Cost        float64 `json:"cost"`
	// Share is the percent of the dish ingredients cost taken by this line.
	Share      float64    `json:"share"`
	ShareLevel ShareLevel `json:"share_level"`
	// UnitMismatch is set when the dish and purchase units cannot be converted.
	UnitMismatch bool `json:"unit_mismatch"`
}

// DishBreakdown is the full cost and margin picture of one dish.
type DishBreakdown struct {
	Mode             CostMode        `json:"mode"`
	Lines            []LineBreakdown `json:"lines"`
	IngredientsCost  float64         `json:"ingredients_cost"`
	PlateWasteAmount float64         `json:"plate_waste_amount"`
	FinalCost        float64         `json:"final_cost"`
	TaxAmount        float64         `json:"tax_amount"`
	NetPrice         float64         `json:"net_price"`
	NetProfit        float64         `json:"net_profit"`
	Margin           float64         `json:"margin"`
	CostPercent      float64         `json:"cost_percent"`
	MarginTier       Tier            `json:"margin_tier"`
	CostTier         Tier            `json:"cost_tier"`
	Badge            HealthBadge     `json:"badge"`
}

// Breakdown itemizes the cost of d and derives its margin under taxPercent.
func Breakdown(d Dish, taxPercent float64, mode CostMode) DishBreakdown {
	b := DishBreakdown{Mode: mode, Lines: make([]LineBreakdown, 0, len(d.Lines))}

	for _, line := range d.Lines {
		lb := LineBreakdown{Name: line.Name}
		switch mode {
		case ModeLegacy:
			lb.BaseCost = line.QuantityInDish * line.PricePerPurchaseUnit
			lb.WasteAmount = lb.BaseCost * (line.IngredientWastage / 100)
			lb.Cost = LegacyLineCost(line)
		default:
			lb.UnitMismatch = !Compatible(line.DishUnit, line.PurchaseUnit)
			if complete(line) {
				lb.BaseCost = QuantityInPurchaseUnit(line) * line.PricePerPurchaseUnit
				lb.Cost = IngredientCost(line)
				lb.WasteAmount = lb.Cost - lb.BaseCost
			}
		}
		b.Lines = append(b.Lines, lb)
	}

	if mode == ModeLegacy {
		b.IngredientsCost = LegacyDishCost(d)
		b.FinalCost = b.IngredientsCost
	} else {
		b.IngredientsCost = DishIngredientsCost(d)
		b.FinalCost = DishFinalCost(d)
		b.PlateWasteAmount = b.FinalCost - b.IngredientsCost
	}

	for i := range b.Lines {
		if b.IngredientsCost > 0 {
			b.Lines[i].Share = b.Lines[i].Cost / b.IngredientsCost * 100
		}
		b.Lines[i].ShareLevel = ShareLevelFor(b.Lines[i].Share)
	}

	b.TaxAmount = d.Price * (taxPercent / 100)
	b.NetPrice = NetPrice(d.Price, taxPercent)
	b.NetProfit = b.NetPrice - b.FinalCost
	b.Margin = Margin(d.Price, b.FinalCost, taxPercent)
	b.CostPercent = CostPercentage(b.Margin)
	b.MarginTier = MarginTierFor(b.Margin)
	b.CostTier = CostTierFor(b.CostPercent)
	b.Badge = HealthBadgeFor(b.Margin)
	return b
}

// Status labels a saved dish in the profitability analysis.
type Status string

const (
	StatusStar   Status = "star"
	StatusAdjust Status = "adjust"
	StatusLoss   Status = "loss"
)

// StatusFor classifies a gross margin.
func StatusFor(margin float64) Status {
	switch {
	case margin >= 60:
		return StatusStar
	case margin >= 40:
		return StatusAdjust
	default:
		return StatusLoss
	}
}

// Profitability is the per-dish row of the profitability analysis.
type Profitability struct {
	DishID     string  `json:"dish_id"`
	Dish       string  `json:"dish"`
	CategoryID string  `json:"category_id"`
	Price      float64 `json:"price"`
	Cost       float64 `json:"cost"`
	Margin     float64 `json:"margin"`
	Status     Status  `json:"status"`
}

// Analyze costs a saved dish with the legacy formula and rates it on its gross price.
func Analyze(d Dish) Profitability {
	cost := LegacyDishCost(d)
	margin := GrossMargin(d.Price, cost)
	return Profitability{
		DishID:     d.ID,
		Dish:       d.Name,
		CategoryID: d.CategoryID,
		Price:      d.Price,
		Cost:       cost,
		Margin:     margin,
		Status:     StatusFor(margin),
	}
}
