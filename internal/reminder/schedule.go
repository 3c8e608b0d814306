package reminder

import (
	"fmt"
	"time"
)

// Input carries a user-entered dosing plan. Callers must check
// Validate before constructing a Reminder from it; the expander does
// not re-check the date range.
type Input struct {
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage"`
	Frequency      Frequency `json:"frequency"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
}

// Validate checks that both dates parse and that the end date is not
// before the start date.
func (in Input) Validate() error {
	start, err := time.Parse(DateLayout, in.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q: %w", in.StartDate, err)
	}
	end, err := time.Parse(DateLayout, in.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q: %w", in.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", in.EndDate, in.StartDate)
	}
	return nil
}

// ExpandSchedule produces one pending slot per (day, time) pair:
// every calendar day from StartDate through EndDate inclusive,
// crossed with the frequency's time list in declared order. Slot IDs
// combine a creation-time seed with a per-call counter, so slots
// generated within the same tick never collide.
func ExpandSchedule(in Input) []NotificationSlot {
	start, err := time.Parse(DateLayout, in.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, in.EndDate)
	if err != nil {
		return nil
	}

	seed := time.Now().UnixNano()
	times := in.Frequency.Times()

	var slots []NotificationSlot
	seq := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, tod := range times {
			seq++
			slots = append(slots, NotificationSlot{
				ID:     fmt.Sprintf("%d-%d", seed, seq),
				Date:   day.Format(DateLayout),
				Time:   tod,
				Status: StatusPending,
			})
		}
	}
	return slots
}
