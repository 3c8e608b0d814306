package reminder

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used for reminder date ranges
// and notification slot dates.
const DateLayout = "2006-01-02"

// TimeLayout is the 24-hour wall-clock form used for slot times.
const TimeLayout = "15:04"

// Status values for a notification slot. A slot only ever moves from
// pending to shown; dismissed is part of the vocabulary for future
// use but nothing produces it yet.
const (
	StatusPending   = "pending"
	StatusShown     = "shown"
	StatusDismissed = "dismissed"
)

// Frequency selects the fixed time-of-day list used for each day in a
// reminder's date range.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyTwice  Frequency = "twice"
	FrequencyWeekly Frequency = "weekly"
)

// Times returns the times of day (HH:MM) at which a reminder with
// this frequency fires on each day in its range. Unrecognized values
// fall back to the single morning dose. "weekly" fires every day in
// the range, same as "daily".
func (f Frequency) Times() []string {
	switch f {
	case FrequencyDaily:
		return []string{"09:00"}
	case FrequencyTwice:
		return []string{"09:00", "21:00"}
	case FrequencyWeekly:
		return []string{"09:00"}
	default:
		return []string{"09:00"}
	}
}

// NotificationSlot is one concrete scheduled alert: a calendar date
// plus a time of day, with a delivery status.
type NotificationSlot struct {
	ID     string `json:"id" bson:"id"`
	Date   string `json:"date" bson:"date"`
	Time   string `json:"time" bson:"time"`
	Status string `json:"status" bson:"status"`
}

// Reminder is a user-declared medication dosing plan together with
// the full set of notification slots expanded from it at creation
// time. Slots are never appended to or regenerated after creation;
// only their status changes.
type Reminder struct {
	ID             string             `json:"id" bson:"id"`
	MedicationName string             `json:"medication_name" bson:"medication_name"`
	Dosage         string             `json:"dosage" bson:"dosage"`
	Frequency      Frequency          `json:"frequency" bson:"frequency"`
	StartDate      string             `json:"start_date" bson:"start_date"`
	EndDate        string             `json:"end_date" bson:"end_date"`
	Notifications  []NotificationSlot `json:"notifications" bson:"notifications"`
}

// NewReminder stamps a creation-time-derived ID and expands the full
// notification schedule for the given plan.
func NewReminder(in Input) *Reminder {
	return &Reminder{
		ID:             fmt.Sprintf("rem-%d", time.Now().UnixNano()),
		MedicationName: in.MedicationName,
		Dosage:         in.Dosage,
		Frequency:      in.Frequency,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Notifications:  ExpandSchedule(in),
	}
}
