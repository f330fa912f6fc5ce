package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/menucost/internal/db"
	"github.com/Simplici0/menucost/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database.DB, "../../migrations", nil); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cfg := Config{
		AdminEmail:    "admin@menucost.mx",
		AdminPassword: "12345",
		Currency:      "MXN",
		TaxPercent:    16,
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(context.Background(), database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 6 {
				t.Fatalf("expected 6 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM users WHERE email = ?`, "admin@menucost.mx", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM user_settings WHERE tax_percentage = ?`, 16, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM menu_categories`, nil, 4)
	assertCount(t, database, `SELECT COUNT(*) FROM menu_categories WHERE name = ? AND position = ?`, []any{"Postres", 2}, 1)

	var hash string
	if err := database.Get(&hash, `SELECT password_hash FROM users WHERE email = ?`, "admin@menucost.mx"); err != nil {
		t.Fatalf("query admin hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("12345")); err != nil {
		t.Fatalf("expected admin hash to match password: %v", err)
	}
}

func TestRunWithoutAdminSeedsNothing(t *testing.T) {
	t.Parallel()

	database, err := db.Open(filepath.Join(t.TempDir(), "seed-empty.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database.DB, "../../migrations", nil); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	stats, err := Run(context.Background(), database, Config{})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 0 {
		t.Fatalf("expected no inserts without admin credentials, got %d", stats.Inserts)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM menu_categories`, nil, 0)
}

func assertCount(t *testing.T, database *sqlx.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.Get(&count, query)
	case []any:
		err = database.Get(&count, query, v...)
	default:
		err = database.Get(&count, query, v)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
