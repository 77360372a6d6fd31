// Package storage provides SQLite-based persistence for replay journals.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/brickfall/internal/replay"
)

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplaySummary describes a stored replay without its input journal.
type ReplaySummary struct {
	ID         int64
	Layout     string
	Player     string
	Ticks      uint64
	BlocksLeft int
	FinalHash  uint64
	CreatedAt  time.Time
}

// Duration returns the simulated time the replay covers.
func (r ReplaySummary) Duration(tick time.Duration) time.Duration {
	return time.Duration(r.Ticks) * tick //#nosec G115 -- tick counts stay far below MaxInt64
}

// ReplayEntry is a stored replay with its decoded journal.
type ReplayEntry struct {
	ReplaySummary
	Journal replay.Journal
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
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			layout TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			blocks_left INTEGER NOT NULL,
			final_hash TEXT NOT NULL,
			journal BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_layout ON replays(layout);
		CREATE INDEX IF NOT EXISTS idx_replays_player ON replays(player);
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

// SaveReplay stores a journal recorded by player.
// Returns the ID of the inserted record.
func (s *Store) SaveReplay(player string, j replay.Journal) (int64, error) {
	blob, err := replay.Encode(j)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO replays (layout, player, ticks, blocks_left, final_hash, journal)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		j.Layout, player, int64(j.Ticks), j.BlocksLeft, formatHash(j.FinalHash), blob, //#nosec G115 -- tick counts stay far below MaxInt64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Replay retrieves a stored replay by ID.
// Returns ErrNotFound if no replay has that ID.
func (s *Store) Replay(id int64) (*ReplayEntry, error) {
	var e ReplayEntry
	var ticks int64
	var hash string
	var blob []byte
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, layout, player, ticks, blocks_left, final_hash, journal, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Layout, &e.Player, &ticks, &e.BlocksLeft, &hash, &blob, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	e.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	e.FinalHash = parseHash(hash)
	e.CreatedAt = parseTime(createdAt)

	e.Journal, err = replay.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %d: %w", id, err)
	}

	return &e, nil
}

// ListReplays retrieves the most recent replays, newest first.
func (s *Store) ListReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, layout, player, ticks, blocks_left, final_hash, created_at
		 FROM replays
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplaySummary
	for rows.Next() {
		var e ReplaySummary
		var ticks int64
		var hash string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Layout, &e.Player, &ticks, &e.BlocksLeft, &hash, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		e.FinalHash = parseHash(hash)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteReplay removes a stored replay.
// Returns ErrNotFound if no replay has that ID.
func (s *Store) DeleteReplay(id int64) error {
	result, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// CountReplays returns the number of stored replays per layout.
func (s *Store) CountReplays() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT layout, COUNT(*) FROM replays GROUP BY layout`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var layout string
		var n int
		if err := rows.Scan(&layout, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[layout] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// Hashes are stored as hex text; SQLite integers are signed.
func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

func parseHash(s string) uint64 {
	h, _ := strconv.ParseUint(s, 16, 64)
	return h
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
