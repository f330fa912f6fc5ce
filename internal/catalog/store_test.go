package catalog

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/Simplici0/menucost/internal/db"
	"github.com/Simplici0/menucost/internal/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "catalog-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database.DB, "../../migrations", nil); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return New(database, Options{DefaultCurrency: "MXN", DefaultTaxPercent: 16})
}

func newTestUser(t *testing.T, store *Store, email string) User {
	t.Helper()

	user, err := store.CreateUser(context.Background(), email, "secreto123", "Chef")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s: got %.12f, want %.12f", name, got, want)
	}
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error on %s, got %v", field, err)
	}
	if verr.Field != field {
		t.Fatalf("validation field = %q, want %q (%s)", verr.Field, field, verr.Message)
	}
}
