package costing

import (
	"math"
	"sort"
)

// Stats summarizes the profitability of one category.
type Stats struct {
	// AvgMargin is the unweighted mean of dish margins, rounded for display.
	AvgMargin float64 `json:"avg_margin"`
	// AvgCostPercent is 100 - AvgMargin.
	AvgCostPercent float64 `json:"avg_cost_percent"`
	TotalDishes    int     `json:"total_dishes"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// CategoryStatsFor computes Stats for every category, keyed by category ID.
// Categories without dishes get zero stats. Dishes pointing at unknown
// categories are ignored.
func CategoryStatsFor(dishes []Dish, categories []Category, taxPercent float64, mode CostMode) map[string]Stats {
	byCategory := make(map[string][]Dish, len(categories))
	for _, d := range dishes {
		byCategory[d.CategoryID] = append(byCategory[d.CategoryID], d)
	}

	tax := TaxContext{TaxPercent: taxPercent}
	stats := make(map[string]Stats, len(categories))
	for _, c := range categories {
		group := byCategory[c.ID]
		if len(group) == 0 {
			stats[c.ID] = Stats{}
			continue
		}

		sum, revenue := 0.0, 0.0
		for _, d := range group {
			sum += DishMargin(d, tax, mode)
			revenue += d.Price
		}
		// math.Round goes half away from zero: a -2.5 mean becomes -3, not -2.
		avg := math.Round(sum / float64(len(group)))
		stats[c.ID] = Stats{
			AvgMargin:      avg,
			AvgCostPercent: CostPercentage(avg),
			TotalDishes:    len(group),
			TotalRevenue:   revenue,
		}
	}
	return stats
}

// MostProfitable returns the visible category with dishes and the highest
// average margin. Ties go to the lowest category ID so the answer does not
// depend on input order.
func MostProfitable(categories []Category, stats map[string]Stats) (Category, bool) {
	candidates := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Hidden || stats[c.ID].TotalDishes == 0 {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return Category{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		mi, mj := stats[candidates[i].ID].AvgMargin, stats[candidates[j].ID].AvgMargin
		if mi != mj {
			return mi > mj
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], true
}

// Target is a category profitability goal. Cost and margin always add up to 100.
type Target struct {
	CostPercent   float64 `json:"cost_percent"`
	MarginPercent float64 `json:"margin_percent"`
}

// TargetFromCost builds a Target from a target cost percentage.
func TargetFromCost(cost float64) Target {
	return Target{CostPercent: cost, MarginPercent: 100 - cost}
}

// TargetFromMargin builds a Target from a target margin percentage.
func TargetFromMargin(margin float64) Target {
	return Target{CostPercent: 100 - margin, MarginPercent: margin}
}

// MeetsTarget reports whether the category's average cost is within the target.
// Categories without dishes never meet a target.
func (s Stats) MeetsTarget(t Target) bool {
	return s.TotalDishes > 0 && s.AvgCostPercent <= t.CostPercent
}
