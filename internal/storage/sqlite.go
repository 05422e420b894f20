// Package storage provides SQLite-based persistence for level progress and
// attempt history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
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

// ProgressKey is the row key of the saved progress.
const ProgressKey = "mysteryKeyboardProgress"

// Store manages the SQLite database connection.
// It is safe for concurrent use.
type Store struct {
	db       *sql.DB
	key      string // progress row
	borrowed bool   // db belongs to the parent store
}

// Attempt is one judged answer for a level.
type Attempt struct {
	ID         int64
	LevelID    string
	LevelIndex int
	Word       string
	Won        bool
	CreatedAt  time.Time
}

// LevelStats aggregates the attempts of one level.
type LevelStats struct {
	LevelID    string
	LevelIndex int
	Attempts   int
	Wins       int
	LastPlayed time.Time
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

	store := &Store{db: db, key: ProgressKey}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			current_level INTEGER NOT NULL,
			last_played DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			word TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_level_id ON attempts(level_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. Closing a store returned by
// ForPlayer is a no-op.
func (s *Store) Close() error {
	if s.db != nil && !s.borrowed {
		return s.db.Close()
	}
	return nil
}

// ForPlayer returns a view of the store whose progress is saved under a
// separate key for player. Attempts are shared. An empty player returns s.
func (s *Store) ForPlayer(player string) *Store {
	if player == "" {
		return s
	}
	return &Store{db: s.db, key: ProgressKey + ":" + player, borrowed: true}
}

// LoadProgress returns the saved level index, or 0 when nothing is saved.
func (s *Store) LoadProgress() (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT current_level FROM progress WHERE key = ?",
		s.key,
	).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return level, nil
}

// LastPlayed returns when progress was last saved.
// The zero time means no progress is stored.
func (s *Store) LastPlayed() (time.Time, error) {
	var lastPlayed any
	err := s.db.QueryRow(
		"SELECT last_played FROM progress WHERE key = ?",
		s.key,
	).Scan(&lastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return parseTime(lastPlayed), nil
}

// SaveProgress stores level as the current level and stamps last_played.
func (s *Store) SaveProgress(level int) error {
	if level < 0 {
		return fmt.Errorf("storage: negative level %d", level)
	}
	_, err := s.db.Exec(
		`INSERT INTO progress (key, current_level, last_played)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
		   current_level = excluded.current_level,
		   last_played = excluded.last_played`,
		s.key, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ClearProgress removes the saved progress.
func (s *Store) ClearProgress() error {
	_, err := s.db.Exec("DELETE FROM progress WHERE key = ?", s.key)
	if err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// RecordAttempt stores a judged answer.
// Returns the ID of the inserted record.
func (s *Store) RecordAttempt(a Attempt) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO attempts (level_id, level_index, word, won) VALUES (?, ?, ?, ?)",
		a.LevelID, a.LevelIndex, a.Word, a.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Attempts returns the most recent attempts, newest first.
// An empty levelID returns attempts for all levels.
func (s *Store) Attempts(levelID string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, level_index, word, won, created_at
		 FROM attempts
		 WHERE ? = '' OR level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var createdAt any
		if err := rows.Scan(&a.ID, &a.LevelID, &a.LevelIndex, &a.Word, &a.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.CreatedAt = parseTime(createdAt)
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// LevelStats returns per-level attempt counts ordered by level index.
func (s *Store) LevelStats() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MIN(level_index), COUNT(*), COALESCE(SUM(won), 0), MAX(created_at)
		 FROM attempts
		 GROUP BY level_id
		 ORDER BY MIN(level_index), level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var out []LevelStats
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.LevelIndex, &st.Attempts, &st.Wins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// parseTime handles both time.Time and string datetimes returned by the driver.
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
