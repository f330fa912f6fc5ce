// Package sheet reads inventory price lists from and writes menu reports to .xlsx workbooks.
package sheet

import (
	"github.com/shopspring/decimal"
)

// Money rounds v to cents, half away from zero.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Percent rounds v to one decimal.
func Percent(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(1)
}
