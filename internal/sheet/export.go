package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/menucost/internal/menu"
)

const (
	dishesSheet     = "Platos"
	categoriesSheet = "Categorías"
)

// ExportMenu writes r as a workbook with a dish sheet and a category sheet.
func ExportMenu(w io.Writer, r menu.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), dishesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(categoriesSheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	dishRows := [][]any{{
		"Categoría", "Plato",
		"Precio (" + r.Currency + ")", "Costo (" + r.Currency + ")",
		"Margen %", "Costo %", "Nivel",
	}}
	for _, d := range r.Dishes {
		dishRows = append(dishRows, []any{
			d.CategoryName,
			d.Name,
			Money(d.Price).InexactFloat64(),
			Money(d.Cost).InexactFloat64(),
			Percent(d.Margin).InexactFloat64(),
			Percent(d.CostPercent).InexactFloat64(),
			d.MarginTier,
		})
	}
	if err := writeRows(f, dishesSheet, dishRows); err != nil {
		return err
	}

	catRows := [][]any{{
		"Categoría", "Platos", "Margen promedio %", "Costo promedio %",
		"Ventas (" + r.Currency + ")", "Objetivo costo %", "Cumple objetivo",
	}}
	for _, c := range r.Categories {
		target, meets := any(""), any("")
		if c.Target != nil {
			target = Percent(c.Target.CostPercent).InexactFloat64()
			meets = map[bool]string{true: "sí", false: "no"}[c.MeetsTarget]
		}
		catRows = append(catRows, []any{
			c.Name,
			c.Stats.TotalDishes,
			c.Stats.AvgMargin,
			c.Stats.AvgCostPercent,
			Money(c.Stats.TotalRevenue).InexactFloat64(),
			target,
			meets,
		})
	}
	if err := writeRows(f, categoriesSheet, catRows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
