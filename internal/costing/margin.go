package costing

// NetPrice removes tax from a public price.
func NetPrice(publicPrice, taxPercent float64) float64 {
	return publicPrice * (1 - taxPercent/100)
}

// Margin is the percent of the net price left after cost.
// A non-positive public price, or a tax that leaves no net price, yields 0.
func Margin(publicPrice, cost, taxPercent float64) float64 {
	if publicPrice <= 0 {
		return 0
	}
	net := NetPrice(publicPrice, taxPercent)
	if net <= 0 {
		return 0
	}
	return (net - cost) / net * 100
}

// CostPercentage is the share of the net price consumed by cost: 100 - margin.
func CostPercentage(margin float64) float64 {
	return 100 - margin
}

// DishMargin computes the margin of d under the account tax.
func DishMargin(d Dish, tax TaxContext, mode CostMode) float64 {
	return Margin(d.Price, DishCost(d, mode), tax.TaxPercent)
}

// GrossMargin is the margin on the public price with no tax deducted.
func GrossMargin(publicPrice, cost float64) float64 {
	return Margin(publicPrice, cost, 0)
}
