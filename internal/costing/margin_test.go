package costing

import (
	"math"
	"testing"
)

func TestMargin_PriceTaxAndCost(t *testing.T) {
	net := NetPrice(100, 16)
	margin := Margin(100, 30, 16)

	nearlyEqual(t, "net", net, 84)
	nearlyEqual(t, "margin", margin, (84.0-30)/84*100)
	nearlyEqual(t, "costPercentage", CostPercentage(margin), 30.0/84*100)
	if math.Abs(margin-64.29) > 0.005 {
		t.Fatalf("margin = %v, want about 64.29", margin)
	}
}

func TestMargin_NonPositivePriceIsZero(t *testing.T) {
	for _, price := range []float64{0, -5} {
		for _, cost := range []float64{0, 10, 1e6} {
			for _, tax := range []float64{0, 16, 99} {
				if got := Margin(price, cost, tax); got != 0 {
					t.Fatalf("Margin(%v, %v, %v) = %v, want 0", price, cost, tax, got)
				}
			}
		}
	}
	if got := Margin(0, 10, 16); got != 0 {
		t.Fatalf("Margin(0, 10, 16) = %v, want 0", got)
	}
}

func TestMargin_FullTaxIsZero(t *testing.T) {
	for _, tax := range []float64{100, 120} {
		got := Margin(100, 30, tax)
		if got != 0 {
			t.Fatalf("Margin(100, 30, %v) = %v, want 0", tax, got)
		}
	}
}

func TestCostPercentage_ComplementsMargin(t *testing.T) {
	prices := []float64{-1, 0, 1, 12.5, 100, 999.99}
	costs := []float64{0, 0.3, 30, 84, 150}
	taxes := []float64{0, 8, 16, 50, 100}

	for _, p := range prices {
		for _, c := range costs {
			for _, tax := range taxes {
				m := Margin(p, c, tax)
				if math.IsNaN(m) || math.IsInf(m, 0) {
					t.Fatalf("Margin(%v, %v, %v) is not finite", p, c, tax)
				}
				nearlyEqual(t, "margin+costPercentage", m+CostPercentage(m), 100)
			}
		}
	}
}

func TestDishMargin_UsesSelectedMode(t *testing.T) {
	d := Dish{
		Price:          100,
		WastagePercent: 10,
		Lines: []IngredientLine{
			{PurchaseUnit: Kilogram, PricePerPurchaseUnit: 20, DishUnit: Gram, QuantityInDish: 1000},
		},
	}
	tax := TaxContext{TaxPercent: 20}

	nearlyEqual(t, "unit aware", DishMargin(d, tax, ModeUnitAware), (80.0-22)/80*100)
	nearlyEqual(t, "legacy", DishMargin(d, tax, ModeLegacy), (80.0-20000)/80*100)
}
