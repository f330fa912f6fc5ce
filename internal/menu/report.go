// Package menu assembles the menu dashboard figures from a catalog snapshot.
package menu

import (
	"sort"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/costing"
)

// CategoryRow is one category on the dashboard.
type CategoryRow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Emoji       string          `json:"emoji"`
	Hidden      bool            `json:"is_hidden"`
	Stats       costing.Stats   `json:"stats"`
	MarginTier  string          `json:"margin_tier"`
	CostTier    string          `json:"cost_tier"`
	Color       string          `json:"color"`
	Target      *costing.Target `json:"target,omitempty"`
	MeetsTarget bool            `json:"meets_target"`
}

// DishRow is one dish costed under the report mode.
type DishRow struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	Margin       float64 `json:"margin"`
	CostPercent  float64 `json:"cost_percent"`
	MarginTier   string  `json:"margin_tier"`
}

// Report is the menu dashboard.
type Report struct {
	Mode           string        `json:"mode"`
	Currency       string        `json:"currency"`
	TaxPercent     float64       `json:"tax_percentage"`
	Categories     []CategoryRow `json:"categories"`
	Dishes         []DishRow     `json:"dishes"`
	MostProfitable *CategoryRow  `json:"most_profitable"`
}

// Build costs every dish in snap under mode and aggregates per category.
func Build(snap catalog.Snapshot, mode costing.CostMode) Report {
	tax := snap.Tax()
	dishes := snap.CostingDishes(mode)
	categories := snap.CostingCategories()
	stats := costing.CategoryStatsFor(dishes, categories, tax.TaxPercent, mode)

	r := Report{
		Mode:       mode.String(),
		Currency:   snap.Settings.Currency,
		TaxPercent: tax.TaxPercent,
		Categories: make([]CategoryRow, 0, len(snap.Categories)),
		Dishes:     make([]DishRow, 0, len(dishes)),
	}

	names := make(map[string]string, len(snap.Categories))
	rows := make(map[string]CategoryRow, len(snap.Categories))
	for i, c := range snap.Categories {
		cc := categories[i]
		st := stats[c.ID]
		row := CategoryRow{
			ID:         c.ID,
			Name:       c.Name,
			Emoji:      c.Emoji,
			Hidden:     c.Hidden,
			Stats:      st,
			MarginTier: costing.MarginTierFor(st.AvgMargin).String(),
			CostTier:   costing.CostTierFor(st.AvgCostPercent).String(),
			Color:      costing.MarginTierFor(st.AvgMargin).Color(),
			Target:     cc.Target,
		}
		if st.TotalDishes == 0 {
			row.MarginTier = costing.TierNeutral.String()
			row.CostTier = costing.TierNeutral.String()
			row.Color = costing.TierNeutral.Color()
		}
		if cc.Target != nil {
			row.MeetsTarget = st.MeetsTarget(*cc.Target)
		}
		names[c.ID] = c.Name
		rows[c.ID] = row
		r.Categories = append(r.Categories, row)
	}

	for _, d := range dishes {
		if _, ok := names[d.CategoryID]; !ok {
			continue
		}
		cost := costing.DishCost(d, mode)
		margin := costing.Margin(d.Price, cost, tax.TaxPercent)
		r.Dishes = append(r.Dishes, DishRow{
			ID:           d.ID,
			Name:         d.Name,
			CategoryID:   d.CategoryID,
			CategoryName: names[d.CategoryID],
			Price:        d.Price,
			Cost:         cost,
			Margin:       margin,
			CostPercent:  costing.CostPercentage(margin),
			MarginTier:   costing.MarginTierFor(margin).String(),
		})
	}
	sort.SliceStable(r.Dishes, func(i, j int) bool {
		return r.Dishes[i].Margin > r.Dishes[j].Margin
	})

	if best, ok := costing.MostProfitable(categories, stats); ok {
		row := rows[best.ID]
		r.MostProfitable = &row
	}
	return r
}

// Profitability runs the saved-dish analysis over every dish in snap.
func Profitability(snap catalog.Snapshot) []costing.Profitability {
	out := make([]costing.Profitability, 0, len(snap.Dishes))
	for _, d := range snap.CostingDishes(costing.ModeLegacy) {
		out = append(out, costing.Analyze(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Margin > out[j].Margin
	})
	return out
}
