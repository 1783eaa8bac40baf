package store

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/lox/cityweather/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestThemeDefaultsToDark(t *testing.T) {
	store := setupTestStore(t)

	theme, err := store.Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != models.ThemeDark {
		t.Errorf("default theme = %s, want dark", theme)
	}
}

func TestSetAndGetTheme(t *testing.T) {
	store := setupTestStore(t)

	if err := store.SetTheme(models.ThemeLight); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	theme, err := store.Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != models.ThemeLight {
		t.Errorf("theme = %s, want light", theme)
	}

	// Toggling back overwrites the same key.
	if err := store.SetTheme(models.ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	theme, _ = store.Theme()
	if theme != models.ThemeDark {
		t.Errorf("theme = %s, want dark", theme)
	}
}

func TestUnrecognisedThemeFallsBackToDark(t *testing.T) {
	store := setupTestStore(t)

	if err := store.set(ThemeKey, "solarized"); err != nil {
		t.Fatalf("set: %v", err)
	}
	theme, err := store.Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != models.ThemeDark {
		t.Errorf("theme = %s, want dark fallback", theme)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
