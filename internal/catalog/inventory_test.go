package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Simplici0/menucost/internal/costing"
)

func TestInventory_CRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store, "chef@example.com")

	item, err := store.CreateInventoryItem(ctx, user.ID, InventoryInput{Name: "Tomate", Unit: "KG", PricePerUnit: 32})
	if err != nil {
		t.Fatalf("CreateInventoryItem: %v", err)
	}
	if item.Unit != costing.Kilogram || item.Category != defaultInventoryCategory {
		t.Fatalf("unexpected item: %+v", item)
	}

	if _, err := store.UpdateInventoryItem(ctx, user.ID, item.ID, InventoryInput{Name: "Tomate", Unit: "kg", PricePerUnit: 35}); err != nil {
		t.Fatalf("UpdateInventoryItem: %v", err)
	}
	got, err := store.GetInventoryItem(ctx, user.ID, item.ID)
	if err != nil {
		t.Fatalf("GetInventoryItem: %v", err)
	}
	if got.PricePerUnit != 35 {
		t.Fatalf("price = %v, want 35", got.PricePerUnit)
	}

	_, err = store.CreateInventoryItem(ctx, user.ID, InventoryInput{Name: "Sal", Unit: "cucharadas", PricePerUnit: 1})
	assertValidation(t, err, "unit")
	_, err = store.CreateInventoryItem(ctx, user.ID, InventoryInput{Name: "Sal", Unit: "kg", PricePerUnit: -1})
	assertValidation(t, err, "price_per_unit")

	if err := store.DeleteInventoryItem(ctx, user.ID, item.ID); err != nil {
		t.Fatalf("DeleteInventoryItem: %v", err)
	}
	if err := store.DeleteInventoryItem(ctx, user.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnsureInventoryItem_ResolutionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store, "chef@example.com")

	created, err := store.EnsureInventoryItem(ctx, user.ID, "", InventoryInput{Name: "Arroz", Unit: "kg", PricePerUnit: 20})
	if err != nil {
		t.Fatalf("EnsureInventoryItem create: %v", err)
	}

	byName, err := store.EnsureInventoryItem(ctx, user.ID, "", InventoryInput{Name: "ARROZ", Unit: "kg", PricePerUnit: 22})
	if err != nil {
		t.Fatalf("EnsureInventoryItem by name: %v", err)
	}
	if byName.ID != created.ID || byName.PricePerUnit != 22 {
		t.Fatalf("expected price update on %s, got %+v", created.ID, byName)
	}

	otherUnit, err := store.EnsureInventoryItem(ctx, user.ID, "", InventoryInput{Name: "Arroz", Unit: "gr", PricePerUnit: 0.03})
	if err != nil {
		t.Fatalf("EnsureInventoryItem other unit: %v", err)
	}
	if otherUnit.ID == created.ID {
		t.Fatalf("same name with another unit should create a new item")
	}

	byID, err := store.EnsureInventoryItem(ctx, user.ID, created.ID, InventoryInput{Name: "Arroz blanco", Unit: "gr", PricePerUnit: 0.025})
	if err != nil {
		t.Fatalf("EnsureInventoryItem by id: %v", err)
	}
	if byID.ID != created.ID || byID.Unit != costing.Gram || byID.Name != "Arroz" {
		t.Fatalf("unexpected id match: %+v", byID)
	}

	items, err := store.ListInventory(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListInventory: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 inventory items, got %d", len(items))
	}
}
