// Package archive provides SQLite-based persistence for generated layouts.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"dungeon-generator/internal/dungeon"
	"dungeon-generator/internal/export"
)

// ErrNotFound is returned when no layout is stored under a seed.
var ErrNotFound = errors.New("layout not found")

// Record is one archived layout.
type Record struct {
	Seed      int64           `json:"seed"`
	Name      string          `json:"name"`
	Summary   dungeon.Summary `json:"summary"`
	YAML      []byte          `json:"-"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Archive wraps the SQLite connection.
type Archive struct {
	db *sql.DB
}

// Open opens or creates the archive database at the given path.
func Open(path string) (*Archive, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create archive directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open archive")
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to run %q", p)
		}
	}

	a := &Archive{db: db}

	if err := a.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (a *Archive) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS layouts (
			seed INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			attempt INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			rooms INTEGER NOT NULL,
			triangles INTEGER NOT NULL,
			tree_edges INTEGER NOT NULL,
			extra_edges INTEGER NOT NULL,
			unreachable INTEGER NOT NULL,
			corridor_tiles INTEGER NOT NULL,
			yaml BLOB NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_layouts_created ON layouts(created_at)`,
	}

	for _, m := range migrations {
		if _, err := a.db.Exec(m); err != nil {
			return errors.Wrapf(err, "migration failed\nSQL: %s", m)
		}
	}
	return nil
}

// Save stores a layout under its seed, replacing any earlier layout with the
// same seed. A stored layout keeps the name it was first given.
func (a *Archive) Save(ctx context.Context, layout *dungeon.Layout) (*Record, error) {
	var buf bytes.Buffer
	if err := export.EncodeLayoutYAML(&buf, layout); err != nil {
		return nil, errors.Wrap(err, "failed to encode layout")
	}

	s := layout.Summary()
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO layouts (seed, name, attempt, width, height, rooms, triangles,
			tree_edges, extra_edges, unreachable, corridor_tiles, yaml, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(seed) DO UPDATE SET
			attempt = excluded.attempt,
			width = excluded.width,
			height = excluded.height,
			rooms = excluded.rooms,
			triangles = excluded.triangles,
			tree_edges = excluded.tree_edges,
			extra_edges = excluded.extra_edges,
			unreachable = excluded.unreachable,
			corridor_tiles = excluded.corridor_tiles,
			yaml = excluded.yaml,
			created_at = excluded.created_at`,
		s.Seed, petname.Generate(2, "-"), s.Attempt, s.Width, s.Height, s.Rooms, s.Triangles,
		s.TreeEdges, s.ExtraEdges, s.Unreachable, s.CorridorTiles, buf.Bytes(), time.Now().Unix(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save layout %d", s.Seed)
	}

	return a.Get(ctx, s.Seed)
}

const recordColumns = `seed, name, attempt, width, height, rooms, triangles,
	tree_edges, extra_edges, unreachable, corridor_tiles, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner, extra ...any) (*Record, error) {
	var r Record
	var created int64
	dest := []any{
		&r.Seed, &r.Name, &r.Summary.Attempt, &r.Summary.Width, &r.Summary.Height,
		&r.Summary.Rooms, &r.Summary.Triangles, &r.Summary.TreeEdges,
		&r.Summary.ExtraEdges, &r.Summary.Unreachable, &r.Summary.CorridorTiles, &created,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	r.Summary.Seed = r.Seed
	r.CreatedAt = time.Unix(created, 0)
	return &r, nil
}

// Get returns the layout stored under seed, including its YAML document.
func (a *Archive) Get(ctx context.Context, seed int64) (*Record, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+`, yaml FROM layouts WHERE seed = ?`, seed)

	var doc []byte
	r, err := scanRecord(row, &doc)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "seed %d", seed)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load layout %d", seed)
	}
	r.YAML = doc
	return r, nil
}

// List returns every stored layout without its YAML document, newest first.
func (a *Archive) List(ctx context.Context) ([]Record, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM layouts ORDER BY created_at DESC, seed`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list layouts")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan layout")
		}
		records = append(records, *r)
	}
	return records, errors.Wrap(rows.Err(), "failed to list layouts")
}

// Delete removes the layout stored under seed.
func (a *Archive) Delete(ctx context.Context, seed int64) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM layouts WHERE seed = ?`, seed)
	if err != nil {
		return errors.Wrapf(err, "failed to delete layout %d", seed)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(ErrNotFound, "seed %d", seed)
	}
	return nil
}
