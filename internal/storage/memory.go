package storage

import (
	"sync"

	"medreminder/internal/reminder"
)

type MemoryStorage struct {
	reminders []*reminder.Reminder
	mu        sync.Mutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) LoadReminders() ([]*reminder.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*reminder.Reminder, len(m.reminders))
	copy(list, m.reminders)
	return list, nil
}

func (m *MemoryStorage) StoreReminders(reminders []*reminder.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = make([]*reminder.Reminder, len(reminders))
	copy(m.reminders, reminders)
	return nil
}
