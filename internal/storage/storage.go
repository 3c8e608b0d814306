package storage

import (
	"medreminder/internal/reminder"
)

// Storage persists the full reminder list as a single unit under one
// logical key. Every mutation is a whole-list read-modify-write;
// there is no per-record update. Two interleaved writers can lose an
// update, which is an accepted property of this design.
type Storage interface {
	// LoadReminders returns the persisted list. Absent or unparseable
	// state is the valid empty state, not an error.
	LoadReminders() ([]*reminder.Reminder, error)

	// StoreReminders overwrites the persisted list.
	StoreReminders(reminders []*reminder.Reminder) error
}

// SaveReminder expands a newly submitted plan into a Reminder, appends
// it to the persisted list and rewrites the whole list. It returns the
// created record. Date-range validation is the caller's job.
func SaveReminder(s Storage, in reminder.Input) (*reminder.Reminder, error) {
	reminders, err := s.LoadReminders()
	if err != nil {
		return nil, err
	}
	rem := reminder.NewReminder(in)
	reminders = append(reminders, rem)
	if err := s.StoreReminders(reminders); err != nil {
		return nil, err
	}
	return rem, nil
}
