// Package store persists saved themes in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/phyten/tokenstudio/internal/theme"
	"github.com/phyten/tokenstudio/internal/tokens"
)

var ErrNotFound = errors.New("theme not found")

// Store handles SQLite operations for themes.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and applies
// the schema. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("database path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writes
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// DefaultPath returns $XDG_DATA_HOME/tokenstudio/themes.db, falling back to
// ~/.local/share.
func DefaultPath(xdgDataHome, home string) string {
	root := strings.TrimSpace(xdgDataHome)
	if root == "" {
		if strings.TrimSpace(home) == "" {
			if h, err := os.UserHomeDir(); err == nil {
				home = h
			}
		}
		root = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(root, "tokenstudio", "themes.db")
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS themes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    spec TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_themes_name ON themes(name);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Save inserts a theme or replaces the one with the same name. An empty ID
// is filled with a new UUID; the stored ID of an existing name is kept.
func (s *Store) Save(ctx context.Context, t theme.Theme) (theme.Theme, error) {
	t.Name = strings.ToLower(strings.TrimSpace(t.Name))
	if t.Name == "" {
		return t, errors.New("theme name is empty")
	}
	if _, err := tokens.Build(t.Spec); err != nil {
		return t, fmt.Errorf("theme %s: %w", t.Name, err)
	}
	spec, err := json.Marshal(t.Spec)
	if err != nil {
		return t, fmt.Errorf("encode spec: %w", err)
	}

	if existing, err := s.Get(ctx, t.Name); err == nil {
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return t, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO themes (id, name, spec, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, spec = excluded.spec, updated_at = excluded.updated_at
	`, t.ID, t.Name, string(spec),
		t.CreatedAt.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano))
	if err != nil {
		return t, fmt.Errorf("save theme: %w", err)
	}
	return t, nil
}

// Get looks a theme up by ID or by name.
func (s *Store) Get(ctx context.Context, idOrName string) (theme.Theme, error) {
	key := strings.TrimSpace(idOrName)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, spec, created_at FROM themes
		WHERE id = ? OR name = ?
		LIMIT 1
	`, key, strings.ToLower(key))
	t, err := scanTheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return theme.Theme{}, fmt.Errorf("%w: %s", ErrNotFound, idOrName)
	}
	return t, err
}

// List returns all themes ordered by name.
func (s *Store) List(ctx context.Context) ([]theme.Theme, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, spec, created_at FROM themes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var out []theme.Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a theme by ID or name.
func (s *Store) Delete(ctx context.Context, idOrName string) error {
	key := strings.TrimSpace(idOrName)
	res, err := s.db.ExecContext(ctx, `DELETE FROM themes WHERE id = ? OR name = ?`, key, strings.ToLower(key))
	if err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrName)
	}
	return nil
}

// Load copies every stored theme into m.
func (s *Store) Load(ctx context.Context, m *theme.Manager) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range list {
		if err := m.Put(t); err != nil {
			return err
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTheme(sc scanner) (theme.Theme, error) {
	var (
		t       theme.Theme
		spec    string
		created string
	)
	if err := sc.Scan(&t.ID, &t.Name, &spec, &created); err != nil {
		return t, err
	}
	if err := json.Unmarshal([]byte(spec), &t.Spec); err != nil {
		return t, fmt.Errorf("decode spec for %s: %w", t.Name, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return t, fmt.Errorf("parse created_at for %s: %w", t.Name, err)
	}
	t.CreatedAt = ts
	return t, nil
}
