package menu

import (
	"database/sql"
	"math"
	"testing"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/costing"
)

func ingredient(name string, price, qty float64) catalog.DishIngredient {
	return catalog.DishIngredient{
		Name:         name,
		PurchaseUnit: costing.Kilogram,
		PricePerUnit: price,
		Quantity:     qty,
		Unit:         costing.Kilogram,
		DishQuantity: qty,
		DishUnit:     costing.Kilogram,
	}
}

func snapshot() catalog.Snapshot {
	return catalog.Snapshot{
		Settings: catalog.Settings{Currency: "MXN", TaxPercentage: 0},
		Categories: []catalog.Category{
			{ID: "c1", Name: "Entradas", TargetCostPercentage: sql.NullFloat64{Float64: 35, Valid: true}},
			{ID: "c2", Name: "Postres"},
			{ID: "c3", Name: "Bebidas", Hidden: true},
		},
		Dishes: []catalog.Dish{
			{ID: "d1", CategoryID: "c1", Name: "Sopa", Price: 100, Ingredients: []catalog.DishIngredient{ingredient("Caldo", 30, 1)}},
			{ID: "d2", CategoryID: "c3", Name: "Agua", Price: 100, Ingredients: []catalog.DishIngredient{ingredient("Agua", 5, 1)}},
			{ID: "d3", CategoryID: "c1", Name: "Ensalada", Price: 100, Ingredients: []catalog.DishIngredient{ingredient("Lechuga", 10, 1)}},
		},
	}
}

func TestBuild_CategoriesAndMostProfitable(t *testing.T) {
	r := Build(snapshot(), costing.ModeUnitAware)

	if r.Mode != "unit_aware" || r.Currency != "MXN" {
		t.Fatalf("unexpected header: mode=%s currency=%s", r.Mode, r.Currency)
	}
	if len(r.Categories) != 3 || len(r.Dishes) != 3 {
		t.Fatalf("unexpected sizes: categories=%d dishes=%d", len(r.Categories), len(r.Dishes))
	}

	entradas := r.Categories[0]
	if entradas.Stats.AvgMargin != 80 || entradas.Stats.AvgCostPercent != 20 || entradas.Stats.TotalDishes != 2 {
		t.Fatalf("unexpected entradas stats: %+v", entradas.Stats)
	}
	if !entradas.MeetsTarget || entradas.MarginTier != "best" {
		t.Fatalf("entradas should meet its target: %+v", entradas)
	}
	if postres := r.Categories[1]; postres.MarginTier != "neutral" || postres.Color != costing.TierNeutral.Color() {
		t.Fatalf("empty category should be neutral: %+v", postres)
	}

	if r.MostProfitable == nil || r.MostProfitable.ID != "c1" {
		t.Fatalf("hidden Bebidas must not win, got %+v", r.MostProfitable)
	}
	if r.Dishes[0].Name != "Agua" || r.Dishes[2].Name != "Sopa" {
		t.Fatalf("dishes should be sorted by margin: %+v", r.Dishes)
	}
}

func TestBuild_NoDishes(t *testing.T) {
	r := Build(catalog.Snapshot{Categories: []catalog.Category{{ID: "c1", Name: "Entradas"}}}, costing.ModeLegacy)

	if r.MostProfitable != nil {
		t.Fatalf("expected no most profitable category")
	}
	if len(r.Dishes) != 0 {
		t.Fatalf("expected no dishes")
	}
}

func TestProfitability_SortedByMargin(t *testing.T) {
	rows := Profitability(snapshot())

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].DishID != "d2" || rows[0].Status != costing.StatusStar {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[2].DishID != "d1" || math.Abs(rows[2].Margin-70) > 1e-9 {
		t.Fatalf("unexpected last row: %+v", rows[2])
	}
}
