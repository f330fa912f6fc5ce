package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestCategories_CRUDAndTargets(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store, "chef@example.com")

	margin := 70.0
	entradas, err := store.CreateCategory(ctx, user.ID, CategoryInput{Name: " Entradas ", TargetType: "margin", TargetValue: &margin})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	postres, err := store.CreateCategory(ctx, user.ID, CategoryInput{Name: "Postres", Emoji: "🍰"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if entradas.Name != "Entradas" || entradas.Emoji != defaultCategoryEmoji {
		t.Fatalf("unexpected category: %+v", entradas)
	}
	if target := entradas.Target(); target == nil || target.CostPercent != 30 || target.MarginPercent != 70 {
		t.Fatalf("unexpected target: %+v", target)
	}
	if postres.Target() != nil || postres.Position != 1 {
		t.Fatalf("unexpected second category: %+v", postres)
	}

	cost := 25.0
	updated, err := store.UpdateCategory(ctx, user.ID, postres.ID, CategoryInput{Name: "Postres", Emoji: "🍰", TargetType: "cost", TargetValue: &cost})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if got := updated.ToCosting().Target; got == nil || got.MarginPercent != 75 {
		t.Fatalf("unexpected updated target: %+v", got)
	}

	if err := store.SetCategoryHidden(ctx, user.ID, postres.ID, true); err != nil {
		t.Fatalf("SetCategoryHidden: %v", err)
	}
	cats, err := store.ListCategories(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 2 || cats[0].ID != entradas.ID || !cats[1].Hidden {
		t.Fatalf("unexpected categories: %+v", cats)
	}

	if err := store.DeleteCategory(ctx, user.ID, entradas.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if _, err := store.GetCategory(ctx, user.ID, entradas.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategories_ScopedToUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := newTestUser(t, store, "owner@example.com")
	other := newTestUser(t, store, "other@example.com")

	c, err := store.CreateCategory(ctx, owner.ID, CategoryInput{Name: "Bebidas"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if err := store.DeleteCategory(ctx, other.ID, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign category, got %v", err)
	}
	cats, err := store.ListCategories(ctx, other.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 0 {
		t.Fatalf("expected no categories for other user, got %d", len(cats))
	}
}

func TestCategories_RejectsBadTarget(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store, "chef@example.com")

	value := 40.0
	_, err := store.CreateCategory(ctx, user.ID, CategoryInput{Name: "X", TargetType: "profit", TargetValue: &value})
	assertValidation(t, err, "target_type")

	value = 140
	_, err = store.CreateCategory(ctx, user.ID, CategoryInput{Name: "X", TargetType: "cost", TargetValue: &value})
	assertValidation(t, err, "target_value")

	_, err = store.CreateCategory(ctx, user.ID, CategoryInput{Name: "  "})
	assertValidation(t, err, "name")
}
