package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// StorageKey is the well-known key the log is stored under.
const StorageKey = "qr-history"

// SQLiteBackend stores the encoded log as a single row of a key/value table.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (or creates) the database at dbPath.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteBackend{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating kv table: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Load() ([]Record, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, StorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	recs, err := decodeLog([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	return recs, nil
}

// Save writes the whole log in one upsert statement.
func (s *SQLiteBackend) Save(records []Record) error {
	data, err := encodeLog(records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		StorageKey, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, StorageKey); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteBackend) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
