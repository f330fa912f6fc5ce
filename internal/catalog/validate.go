package catalog

import (
	"math"
	"strings"

	"github.com/Simplici0/menucost/internal/costing"
)

func requireText(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "%s es requerido", field)
	}
	return value, nil
}

func requireNonNegative(value float64, field string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return invalid(field, "%s debe ser numérico", field)
	}
	if value < 0 {
		return invalid(field, "%s debe ser mayor o igual a 0", field)
	}
	return nil
}

// requirePercentBelow100 enforces [0,100), the range the costing engine assumes
// for waste and tax.
func requirePercentBelow100(value float64, field string) error {
	if err := requireNonNegative(value, field); err != nil {
		return err
	}
	if value >= 100 {
		return invalid(field, "%s debe ser menor a 100", field)
	}
	return nil
}

func requirePercent(value float64, field string) error {
	if err := requireNonNegative(value, field); err != nil {
		return err
	}
	if value > 100 {
		return invalid(field, "%s debe estar entre 0 y 100", field)
	}
	return nil
}

func requireUnit(raw, field string) (costing.Unit, error) {
	u, ok := costing.ParseUnit(raw)
	if !ok {
		return "", invalid(field, "%s no es una unidad válida", field)
	}
	return u, nil
}
