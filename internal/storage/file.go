package storage

import (
	"encoding/json"
	"os"
	"sync"

	"medreminder/internal/logger"
	"medreminder/internal/reminder"
)

type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage persists the reminder list as one JSON array in a
// single file.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (fs *FileStorage) LoadReminders() ([]*reminder.Reminder, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, err := os.Stat(fs.path); os.IsNotExist(err) {
		return nil, nil
	}
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var reminders []*reminder.Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		// A corrupt blob is treated as the empty state, never fatal.
		logger.Log.Warnf("Discarding unparseable reminder file %s: %v", fs.path, err)
		return nil, nil
	}
	return reminders, nil
}

func (fs *FileStorage) StoreReminders(reminders []*reminder.Reminder) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(reminders, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path, data, 0644)
}
