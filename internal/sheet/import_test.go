package sheet

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/menucost/internal/catalog"
	"github.com/Simplici0/menucost/internal/costing"
)

type fakeUpserter struct {
	items []catalog.InventoryInput
}

func (f *fakeUpserter) EnsureInventoryItem(_ context.Context, _ string, _ string, in catalog.InventoryInput) (catalog.InventoryItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return catalog.InventoryItem{}, &catalog.ValidationError{Field: "name", Message: "name es requerido"}
	}
	unit, ok := costing.ParseUnit(in.Unit)
	if !ok {
		return catalog.InventoryItem{}, &catalog.ValidationError{Field: "unit", Message: "unit no es una unidad válida"}
	}
	f.items = append(f.items, in)
	return catalog.InventoryItem{Name: in.Name, Unit: unit, PricePerUnit: in.PricePerUnit}, nil
}

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := writeRows(f, f.GetSheetName(0), rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestImportInventory_RowsAndErrors(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Nombre", "Unidad", "Precio", "Categoría"},
		{"Tomate", "kg", 32.5, "Verdura"},
		{"Leche", "lt", "24,90"},
		{},
		{"Sal", "cucharadas", 10},
		{"Aceite", "lt", "caro"},
	})
	store := &fakeUpserter{}

	res, err := ImportInventory(context.Background(), store, "user-1", buf)
	if err != nil {
		t.Fatalf("ImportInventory: %v", err)
	}

	if res.Imported != 2 || res.Skipped != 1 || len(res.Errors) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Errors[0].Row != 5 || res.Errors[1].Row != 6 {
		t.Fatalf("unexpected error rows: %+v", res.Errors)
	}
	if store.items[0].Category != "Verdura" || store.items[1].PricePerUnit != 24.90 {
		t.Fatalf("unexpected imported items: %+v", store.items)
	}
}

func TestImportInventory_MissingColumns(t *testing.T) {
	buf := workbook(t, [][]any{{"Nombre", "Precio"}, {"Tomate", 30}})

	_, err := ImportInventory(context.Background(), &fakeUpserter{}, "user-1", buf)
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
}

func TestImportInventory_NotAWorkbook(t *testing.T) {
	_, err := ImportInventory(context.Background(), &fakeUpserter{}, "user-1", strings.NewReader("name,unit,price"))
	if !errors.Is(err, ErrInvalidWorkbook) {
		t.Fatalf("expected ErrInvalidWorkbook, got %v", err)
	}
}

func TestImportInventoryCSV_SameRulesAsWorkbook(t *testing.T) {
	data := "\ufeffNombre,Unidad,Precio\n" +
		"Tomate,kg,32.5\n" +
		"Leche,lt,\"24,90\"\n" +
		",,\n" +
		"Sal,cucharadas,10\n"
	store := &fakeUpserter{}

	res, err := Import(context.Background(), store, "user-1", FormatCSV, strings.NewReader(data))
	if err != nil {
		t.Fatalf("Import csv: %v", err)
	}

	if res.Imported != 2 || res.Skipped != 1 || len(res.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Errors[0].Row != 5 {
		t.Fatalf("unexpected error row: %+v", res.Errors)
	}
	if store.items[0].Name != "Tomate" || store.items[1].PricePerUnit != 24.90 {
		t.Fatalf("unexpected imported items: %+v", store.items)
	}
}

func TestImportInventoryCSV_MalformedQuotes(t *testing.T) {
	_, err := ImportInventoryCSV(context.Background(), &fakeUpserter{}, "user-1", strings.NewReader("name,unit,price\n\"Tomate,kg,3\n"))
	if !errors.Is(err, ErrInvalidWorkbook) {
		t.Fatalf("expected ErrInvalidWorkbook, got %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	cases := []struct {
		filename, contentType string
		want                  Format
	}{
		{"precios.csv", "application/octet-stream", FormatCSV},
		{"PRECIOS.CSV", "", FormatCSV},
		{"precios", "text/csv; charset=utf-8", FormatCSV},
		{"precios.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatXLSX},
		{"precios", "", FormatXLSX},
	}
	for _, tc := range cases {
		if got := FormatFor(tc.filename, tc.contentType); got != tc.want {
			t.Fatalf("FormatFor(%q, %q) = %v, want %v", tc.filename, tc.contentType, got, tc.want)
		}
	}
}
