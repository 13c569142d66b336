// Package catalog keeps a SQLite index of the save files found in a directory.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/samcharles93/edictsave/internal/logger"
	"github.com/samcharles93/edictsave/internal/savegame"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

var ErrNotFound = errors.New("catalog: save not found")

// Entry is one indexed save file.
type Entry struct {
	ID        string        `json:"id"`
	Path      string        `json:"path"`
	Scope     savefmt.Scope `json:"scope"`
	Map       string        `json:"map,omitempty"`
	LevelTime float32       `json:"level_time"`
	Entities  int           `json:"entities"`
	Clients   int           `json:"clients"`
	Autosave  bool          `json:"autosave"`
	Size      int64         `json:"size"`
	ModTime   time.Time     `json:"mod_time"`
	Error     string        `json:"error,omitempty"`
}

// Catalog is safe for concurrent use; SQLite serialises writers.
type Catalog struct {
	db  *sql.DB
	log logger.Logger
}

// Open opens or creates the catalog database at path.
func Open(path string, log logger.Logger) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog: empty db path")
	}
	if log == nil {
		log = logger.Nop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db, log: log}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL UNIQUE,
			scope TEXT NOT NULL,
			map TEXT NOT NULL DEFAULT '',
			level_time REAL NOT NULL DEFAULT 0,
			entities INTEGER NOT NULL DEFAULT 0,
			clients INTEGER NOT NULL DEFAULT 0,
			autosave INTEGER NOT NULL DEFAULT 0,
			size INTEGER NOT NULL,
			mod_time INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS saves_scope ON saves(scope);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) Close() error { return c.db.Close() }

// Upsert stores e keyed by its path. An existing row keeps its ID; e.ID is
// updated to the stored one.
func (c *Catalog) Upsert(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	row := c.db.QueryRowContext(ctx, `
		INSERT INTO saves (id, path, scope, map, level_time, entities, clients, autosave, size, mod_time, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			scope = excluded.scope,
			map = excluded.map,
			level_time = excluded.level_time,
			entities = excluded.entities,
			clients = excluded.clients,
			autosave = excluded.autosave,
			size = excluded.size,
			mod_time = excluded.mod_time,
			error = excluded.error
		RETURNING id`,
		e.ID, e.Path, e.Scope.String(), e.Map, e.LevelTime, e.Entities, e.Clients,
		e.Autosave, e.Size, e.ModTime.UnixNano(), e.Error)
	if err := row.Scan(&e.ID); err != nil {
		return fmt.Errorf("catalog: upsert %s: %w", e.Path, err)
	}
	return nil
}

const selectEntry = `SELECT id, path, scope, map, level_time, entities, clients, autosave, size, mod_time, error FROM saves`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e     Entry
		scope string
		mod   int64
	)
	if err := s.Scan(&e.ID, &e.Path, &scope, &e.Map, &e.LevelTime, &e.Entities, &e.Clients,
		&e.Autosave, &e.Size, &mod, &e.Error); err != nil {
		return Entry{}, err
	}
	_ = e.Scope.UnmarshalText([]byte(scope))
	e.ModTime = time.Unix(0, mod).UTC()
	return e, nil
}

// Get returns the entry with the given ID.
func (c *Catalog) Get(ctx context.Context, id string) (Entry, error) {
	e, err := scanEntry(c.db.QueryRowContext(ctx, selectEntry+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// List returns the entries ordered by path. A ScopeUnknown filter lists everything.
func (c *Catalog) List(ctx context.Context, scope savefmt.Scope) ([]Entry, error) {
	query, args := selectEntry, []any{}
	if scope != savefmt.ScopeUnknown {
		query += ` WHERE scope = ?`
		args = append(args, scope.String())
	}
	rows, err := c.db.QueryContext(ctx, query+` ORDER BY path`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Prune removes rows whose files no longer exist and returns how many went.
func (c *Catalog) Prune(ctx context.Context) (int, error) {
	entries, err := c.List(ctx, savefmt.ScopeUnknown)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if _, err := os.Stat(e.Path); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if _, err := c.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, e.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// IsSaveFile reports whether name carries a save file extension.
func IsSaveFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ssv", ".sav":
		return true
	}
	return false
}

// Index walks dir, inspects every save file and upserts a row for each. Files that
// fail to decode are still indexed with their error. It returns the entries written.
func (c *Catalog) Index(ctx context.Context, dir string, opts savegame.Options) ([]Entry, error) {
	var out []Entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !IsSaveFile(d.Name()) {
			return nil
		}
		e, err := Describe(path, opts)
		if err != nil {
			return err
		}
		if err := c.Upsert(ctx, &e); err != nil {
			return err
		}
		if e.Error != "" {
			c.log.Warn("indexed unreadable save", "path", path, "error", e.Error)
		} else {
			c.log.Debug("indexed save", "path", path, "scope", e.Scope, "id", e.ID)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return out, err
	}
	pruned, err := c.Prune(ctx)
	if err != nil {
		return out, err
	}
	c.log.Info("indexed saves", "dir", dir, "files", len(out), "pruned", pruned)
	return out, nil
}

// Describe builds a catalog entry for the save at path without storing it. Only
// stat failures are returned as errors; decode failures land in Entry.Error.
func Describe(path string, opts savegame.Options) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{Path: abs, Size: st.Size(), ModTime: st.ModTime().UTC()}

	sum, err := savegame.Inspect(abs, opts)
	if err != nil {
		e.Scope, _ = savegame.Sniff(abs)
		e.Error = err.Error()
		return e, nil
	}
	e.Scope = sum.Scope
	switch {
	case sum.Game != nil:
		e.Clients = len(sum.Game.Clients)
		e.Entities = sum.Game.MaxEntities
		e.Autosave = sum.Game.Autosaved
	case sum.Level != nil:
		e.Map = sum.Level.MapName
		e.LevelTime = sum.Level.Time
		e.Entities = len(sum.Level.Entities)
	}
	return e, nil
}
