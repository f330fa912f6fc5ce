package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store, "chef@example.com")

	currency := "usd"
	country := "México"
	st, err := store.UpdateSettings(ctx, user.ID, SettingsUpdate{Currency: &currency, Country: &country})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if st.Currency != "USD" || st.Country != "México" || st.TaxPercentage != 16 || st.UserName != "Chef" {
		t.Fatalf("unexpected settings: %+v", st)
	}

	badTax := 120.0
	_, err = store.UpdateSettings(ctx, user.ID, SettingsUpdate{TaxPercentage: &badTax})
	assertValidation(t, err, "tax_percentage")
}

func TestSyncTax_OnlyWritesOnChange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store, "chef@example.com")

	changed, err := store.SyncTax(ctx, user.ID, 16)
	if err != nil {
		t.Fatalf("SyncTax: %v", err)
	}
	if changed {
		t.Fatalf("same tax should not be written")
	}

	changed, err = store.SyncTax(ctx, user.ID, 8)
	if err != nil {
		t.Fatalf("SyncTax: %v", err)
	}
	if !changed {
		t.Fatalf("new tax should be written")
	}

	st, err := store.GetSettings(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if st.TaxPercentage != 8 {
		t.Fatalf("tax = %v, want 8", st.TaxPercentage)
	}
}

func TestEffectiveSettings_FallsBackToStoreDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store, "chef@example.com")

	if _, err := store.db.ExecContext(ctx, `DELETE FROM user_settings WHERE user_id = ?`, user.ID); err != nil {
		t.Fatalf("delete settings: %v", err)
	}
	if _, err := store.GetSettings(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	st, err := store.EffectiveSettings(ctx, user.ID)
	if err != nil {
		t.Fatalf("EffectiveSettings: %v", err)
	}
	if st.TaxPercentage != 16 || st.Currency != "MXN" {
		t.Fatalf("unexpected default settings: %+v", st)
	}

	snap, err := store.Snapshot(ctx, user.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Tax().TaxPercent != st.TaxPercentage {
		t.Fatalf("snapshot tax %v differs from effective tax %v", snap.Tax().TaxPercent, st.TaxPercentage)
	}
}
