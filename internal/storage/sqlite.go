// Package storage provides SQLite-based history of generation runs, so a
// level seen once can be regenerated from its seed and preset.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded generation.
type Run struct {
	ID         int64
	Seed       int64
	Preset     string
	Cols       int
	Rows       int
	TileDim    int
	Tiles      int // tileset size
	Trees      int
	BackTrees  int
	Sloped     int
	Skipped    int
	DurationMs int64
	Output     string // export directory, empty when nothing was written
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL,
			cols INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			tile_dim INTEGER NOT NULL,
			tiles INTEGER NOT NULL DEFAULT 0,
			trees INTEGER NOT NULL DEFAULT 0,
			back_trees INTEGER NOT NULL DEFAULT 0,
			sloped INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			output TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
		CREATE INDEX IF NOT EXISTS idx_runs_preset ON runs(preset);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a generation run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, preset, cols, rows, tile_dim, tiles, trees, back_trees, sloped, skipped, duration_ms, output)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Preset, r.Cols, r.Rows, r.TileDim, r.Tiles,
		r.Trees, r.BackTrees, r.Sloped, r.Skipped, r.DurationMs, r.Output,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, seed, preset, cols, rows, tile_dim, tiles, trees, back_trees,
	sloped, skipped, duration_ms, output, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(
		&r.ID, &r.Seed, &r.Preset, &r.Cols, &r.Rows, &r.TileDim, &r.Tiles,
		&r.Trees, &r.BackTrees, &r.Sloped, &r.Skipped, &r.DurationMs, &r.Output,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// RunsBySeed retrieves every run that used the given seed, newest first.
func (s *Store) RunsBySeed(seed int64) ([]Run, error) {
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE seed = ? ORDER BY id DESC`,
		seed,
	)
}

// RunByID retrieves one run. Returns nil when it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// ClearRuns deletes the whole history.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// PresetStats contains aggregated statistics for one preset.
type PresetStats struct {
	Preset        string
	Runs          int
	AvgDurationMs float64
	AvgTrees      float64
	LastRun       time.Time
}

// AllPresetStats retrieves statistics for every preset that has been used.
func (s *Store) AllPresetStats() (map[string]*PresetStats, error) {
	rows, err := s.db.Query(
		`SELECT preset, COUNT(*), AVG(duration_ms), AVG(trees), MAX(created_at)
		 FROM runs
		 GROUP BY preset`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get preset stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PresetStats)
	for rows.Next() {
		var ps PresetStats
		var lastRun any
		if err := rows.Scan(&ps.Preset, &ps.Runs, &ps.AvgDurationMs, &ps.AvgTrees, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastRun = parseTime(lastRun)
		stats[ps.Preset] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
