package save

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/younwookim/duskblade/internal/domain/entity"
)

// Checkpoint is one row of the checkpoint history
type Checkpoint struct {
	ID        int64
	Slot      string
	Level     int
	Health    int
	Enemies   int
	CreatedAt time.Time
}

// SQLiteStore keeps the latest checkpoint per slot plus an append-only
// history of every checkpoint written.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// OpenSQLite creates or opens the database at dbPath and returns a store for slot.
// Parent directories are created as needed.
func OpenSQLite(dbPath, slot string) (*SQLiteStore, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("save: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("save: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("save: cannot connect to database: %w", err)
	}

	if slot == "" {
		slot = DefaultSlot
	}
	s := &SQLiteStore{db: db, slot: slot}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("save: migration failed: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			level INTEGER NOT NULL,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS checkpoints (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL,
			level INTEGER NOT NULL,
			health INTEGER NOT NULL,
			enemies INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_checkpoints_slot ON checkpoints(slot, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Slot returns the slot this store writes to
func (s *SQLiteStore) Slot() string {
	return s.slot
}

// Save replaces the slot's checkpoint and appends a history row
func (s *SQLiteStore) Save(data entity.GameData) error {
	raw, err := encode(data)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO saves (slot, level, data, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET level = excluded.level, data = excluded.data, updated_at = excluded.updated_at`,
		s.slot, data.Level, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save: cannot write slot: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO checkpoints (slot, level, health, enemies) VALUES (?, ?, ?, ?)",
		s.slot, data.Level, data.Player.Health, len(data.Enemies),
	)
	if err != nil {
		return fmt.Errorf("save: cannot append history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save: cannot commit: %w", err)
	}
	return nil
}

// Load returns the slot's checkpoint, or ErrNoSave
func (s *SQLiteStore) Load() (*entity.GameData, error) {
	var raw string
	err := s.db.QueryRow("SELECT data FROM saves WHERE slot = ?", s.slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("save: cannot read slot: %w", err)
	}
	return decode([]byte(raw))
}

// History returns the most recent checkpoints of the slot, newest first.
// A limit of zero or less returns every row.
func (s *SQLiteStore) History(limit int) ([]Checkpoint, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(
		`SELECT id, slot, level, health, enemies, created_at
		 FROM checkpoints WHERE slot = ? ORDER BY id DESC LIMIT ?`,
		s.slot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("save: cannot query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var history []Checkpoint
	for rows.Next() {
		var c Checkpoint
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Slot, &c.Level, &c.Health, &c.Enemies, &createdAt); err != nil {
			return nil, fmt.Errorf("save: cannot scan checkpoint: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		history = append(history, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("save: history iteration failed: %w", err)
	}

	return history, nil
}

// parseTime accepts both driver-parsed and raw text timestamps
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
