package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"medreminder/internal/logger"
	"medreminder/internal/reminder"

	_ "github.com/lib/pq"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
)

type PostgresStorage struct {
	db *sql.DB
	mu sync.Mutex
}

// NewPostgresStorage connects to PostgreSQL, pings it and ensures the
// key-value table exists. The storage layout mirrors the SQLite
// backend: the whole reminder list under one key.
func NewPostgresStorage(dataSourceName string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStorage{db: db}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) LoadReminders() ([]*reminder.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = $1", remindersKey).Scan(&value)
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

func (s *PostgresStorage) StoreReminders(reminders []*reminder.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("failed to marshal reminders: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		remindersKey, string(value))
	if err != nil {
		return fmt.Errorf("failed to store reminders: %w", err)
	}
	return nil
}
