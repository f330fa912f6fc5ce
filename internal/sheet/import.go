package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/menucost/internal/catalog"
)

// InventoryUpserter is the part of the catalog store an import writes through.
type InventoryUpserter interface {
	EnsureInventoryItem(ctx context.Context, userID, id string, in catalog.InventoryInput) (catalog.InventoryItem, error)
}

// RowError reports a rejected row, numbered as the spreadsheet shows it.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes an inventory import.
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

var (
	// ErrMissingColumns is returned when the header lacks name, unit or price.
	ErrMissingColumns = errors.New("header must include name, unit and price_per_unit columns")
	// ErrInvalidWorkbook is returned when the upload is not a readable .xlsx or .csv file.
	ErrInvalidWorkbook = errors.New("invalid workbook")
)

// Format is the file type of an inventory upload.
type Format int

const (
	FormatXLSX Format = iota
	FormatCSV
)

// FormatFor picks the upload format from its content type, then its file
// extension. Anything unrecognized is treated as .xlsx.
func FormatFor(filename, contentType string) Format {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "text/csv", "application/csv", "text/comma-separated-values":
			return FormatCSV
		}
	}
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}

// Import reads r as format and upserts its rows like ImportInventory.
func Import(ctx context.Context, store InventoryUpserter, userID string, format Format, r io.Reader) (ImportResult, error) {
	if format == FormatCSV {
		return ImportInventoryCSV(ctx, store, userID, r)
	}
	return ImportInventory(ctx, store, userID, r)
}

var headerAliases = map[string]string{
	"name":           "name",
	"nombre":         "name",
	"ingrediente":    "name",
	"unit":           "unit",
	"unidad":         "unit",
	"price_per_unit": "price",
	"price":          "price",
	"precio":         "price",
	"precio_unidad":  "price",
	"category":       "category",
	"categoria":      "category",
	"categoría":      "category",
	"emoji":          "emoji",
}

// ImportInventory reads the first sheet of an .xlsx price list and upserts
// each row by name and unit. Blank rows are skipped; invalid rows are reported
// and do not stop the import.
func ImportInventory(ctx context.Context, store InventoryUpserter, userID string, r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return ImportResult{}, fmt.Errorf("read rows: %w", err)
	}
	return importRows(ctx, store, userID, rows)
}

// ImportInventoryCSV is ImportInventory for a comma separated price list with
// the same header row.
func ImportInventoryCSV(ctx context.Context, store InventoryUpserter, userID string, r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return importRows(ctx, store, userID, rows)
}

func importRows(ctx context.Context, store InventoryUpserter, userID string, rows [][]string) (ImportResult, error) {
	if len(rows) == 0 {
		return ImportResult{}, ErrMissingColumns
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if name, ok := headerAliases[key]; ok {
			if _, dup := cols[name]; !dup {
				cols[name] = i
			}
		}
	}
	for _, required := range []string{"name", "unit", "price"} {
		if _, ok := cols[required]; !ok {
			return ImportResult{}, ErrMissingColumns
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	res := ImportResult{Errors: []RowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2
		name, unit, rawPrice := cell(row, "name"), cell(row, "unit"), cell(row, "price")
		if name == "" && unit == "" && rawPrice == "" {
			res.Skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.ReplaceAll(rawPrice, ",", "."), 64)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("precio inválido %q", rawPrice)})
			continue
		}

		_, err = store.EnsureInventoryItem(ctx, userID, "", catalog.InventoryInput{
			Name:         name,
			Unit:         unit,
			PricePerUnit: price,
			Category:     cell(row, "category"),
			Emoji:        cell(row, "emoji"),
		})
		var verr *catalog.ValidationError
		switch {
		case errors.As(err, &verr):
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: verr.Message})
			continue
		case err != nil:
			return res, fmt.Errorf("import row %d: %w", rowNum, err)
		}
		res.Imported++
	}
	return res, nil
}
