package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"medreminder/internal/logger"
	"medreminder/internal/reminder"

	_ "github.com/mattn/go-sqlite3"
)

// remindersKey is the single storage key the whole reminder list
// lives under, across all keyed backends.
const remindersKey = "reminders"

type SQLiteStorage struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStorage opens (or creates) the database at dbPath and
// ensures the key-value table exists. The reminder list is stored as
// one serialized value under a single key.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	s := &SQLiteStorage{db: db}
	if err := s.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) createTable() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

func (s *SQLiteStorage) LoadReminders() ([]*reminder.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", remindersKey).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	var reminders []*reminder.Reminder
	if err := json.Unmarshal([]byte(value), &reminders); err != nil {
		logger.Log.Warnf("Discarding unparseable reminder blob: %v", err)
		return nil, nil
	}
	return reminders, nil
}

func (s *SQLiteStorage) StoreReminders(reminders []*reminder.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("failed to marshal reminders: %w", err)
	}
	_, err = s.db.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)",
		remindersKey, string(value))
	if err != nil {
		return fmt.Errorf("failed to store reminders: %w", err)
	}
	return nil
}
