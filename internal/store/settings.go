// Package store persists the small amount of client-local state the dashboard
// keeps between runs. Only the theme lives here; the temperature unit is a
// server-side preference and is never written locally.
package store

import (
	"database/sql"
	"fmt"

	"github.com/lox/cityweather/internal/models"
)

// ThemeKey is the fixed settings key the theme is stored under.
const ThemeKey = "theme"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Theme returns the persisted theme. Absent or unrecognised values default to
// dark, matching a fresh install.
func (s *Store) Theme() (models.Theme, error) {
	value, err := s.get(ThemeKey)
	if err != nil {
		return models.ThemeDark, err
	}
	if models.Theme(value) == models.ThemeLight {
		return models.ThemeLight, nil
	}
	return models.ThemeDark, nil
}

func (s *Store) SetTheme(theme models.Theme) error {
	return s.set(ThemeKey, string(theme))
}
