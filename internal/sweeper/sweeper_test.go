package sweeper

import (
	"errors"
	"io"
	"testing"
	"time"

	"medreminder/internal/reminder"
	"medreminder/internal/storage"

	"github.com/sirupsen/logrus"
)

type fakeNotifier struct {
	calls []string
	fail  bool
}

func (f *fakeNotifier) Notify(title, body string) error {
	f.calls = append(f.calls, body)
	if f.fail {
		return errors.New("permission denied")
	}
	return nil
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedReminder(t *testing.T, store storage.Storage, name string, freq reminder.Frequency) {
	t.Helper()
	_, err := storage.SaveReminder(store, reminder.Input{
		MedicationName: name,
		Dosage:         "500mg",
		Frequency:      freq,
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-03",
	})
	if err != nil {
		t.Fatalf("SaveReminder failed: %v", err)
	}
}

// at pins the sweep instant to January 2nd 2024 at the given wall
// clock; seconds are nonzero to confirm minute-level truncation.
func at(hour, min int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.January, 2, hour, min, 30, 0, time.Local)
	}
}

func TestSweepFiresExactMatches(t *testing.T) {
	store := storage.NewMemoryStorage()
	seedReminder(t, store, "Amoxicillin", reminder.FrequencyTwice)
	notifier := &fakeNotifier{}
	sw := New(store, notifier, newTestLogger(), "* * * * *")
	sw.SetNow(at(9, 0))

	if err := sw.Sweep(); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(notifier.calls))
	}
	if notifier.calls[0] != "Time to take Amoxicillin - 500mg" {
		t.Errorf("unexpected alert body: %q", notifier.calls[0])
	}

	list, err := store.LoadReminders()
	if err != nil {
		t.Fatalf("LoadReminders failed: %v", err)
	}
	for _, slot := range list[0].Notifications {
		want := reminder.StatusPending
		if slot.Date == "2024-01-02" && slot.Time == "09:00" {
			want = reminder.StatusShown
		}
		if slot.Status != want {
			t.Errorf("slot %s %s: got status %s, want %s", slot.Date, slot.Time, slot.Status, want)
		}
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStorage()
	seedReminder(t, store, "Amoxicillin", reminder.FrequencyTwice)
	notifier := &fakeNotifier{}
	sw := New(store, notifier, newTestLogger(), "* * * * *")
	sw.SetNow(at(9, 0))

	if err := sw.Sweep(); err != nil {
		t.Fatalf("first Sweep failed: %v", err)
	}
	if err := sw.Sweep(); err != nil {
		t.Fatalf("second Sweep failed: %v", err)
	}

	if len(notifier.calls) != 1 {
		t.Errorf("expected 1 alert across both sweeps, got %d", len(notifier.calls))
	}

	list, _ := store.LoadReminders()
	shown := 0
	for _, slot := range list[0].Notifications {
		if slot.Status == reminder.StatusShown {
			shown++
		}
	}
	if shown != 1 {
		t.Errorf("expected 1 shown slot, got %d", shown)
	}
}

func TestSweepNoMatchLeavesStateAlone(t *testing.T) {
	store := storage.NewMemoryStorage()
	seedReminder(t, store, "Amoxicillin", reminder.FrequencyTwice)
	notifier := &fakeNotifier{}
	sw := New(store, notifier, newTestLogger(), "* * * * *")
	sw.SetNow(at(10, 30))

	if err := sw.Sweep(); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(notifier.calls) != 0 {
		t.Errorf("expected no alerts, got %d", len(notifier.calls))
	}
	list, _ := store.LoadReminders()
	for _, slot := range list[0].Notifications {
		if slot.Status != reminder.StatusPending {
			t.Errorf("slot %s %s: got status %s, want pending", slot.Date, slot.Time, slot.Status)
		}
	}
}

func TestSweepMarksShownWhenAlertFails(t *testing.T) {
	store := storage.NewMemoryStorage()
	seedReminder(t, store, "Amoxicillin", reminder.FrequencyDaily)
	notifier := &fakeNotifier{fail: true}
	sw := New(store, notifier, newTestLogger(), "* * * * *")
	sw.SetNow(at(9, 0))

	if err := sw.Sweep(); err != nil {
		t.Fatalf("Sweep must not fail on alert emission errors: %v", err)
	}

	list, _ := store.LoadReminders()
	found := false
	for _, slot := range list[0].Notifications {
		if slot.Date == "2024-01-02" && slot.Time == "09:00" {
			found = true
			if slot.Status != reminder.StatusShown {
				t.Errorf("slot must be shown even when the alert fails, got %s", slot.Status)
			}
		}
	}
	if !found {
		t.Fatal("expected a slot for 2024-01-02 09:00")
	}
}

func TestSweepOrderIsDeterministic(t *testing.T) {
	store := storage.NewMemoryStorage()
	seedReminder(t, store, "Amoxicillin", reminder.FrequencyDaily)
	seedReminder(t, store, "Ibuprofen", reminder.FrequencyDaily)
	notifier := &fakeNotifier{}
	sw := New(store, notifier, newTestLogger(), "* * * * *")
	sw.SetNow(at(9, 0))

	if err := sw.Sweep(); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	want := []string{
		"Time to take Amoxicillin - 500mg",
		"Time to take Ibuprofen - 500mg",
	}
	if len(notifier.calls) != len(want) {
		t.Fatalf("expected %d alerts, got %d", len(want), len(notifier.calls))
	}
	for i := range want {
		if notifier.calls[i] != want[i] {
			t.Errorf("alert %d: got %q, want %q", i, notifier.calls[i], want[i])
		}
	}
}

func TestSweepEmptyStorage(t *testing.T) {
	store := storage.NewMemoryStorage()
	sw := New(store, &fakeNotifier{}, newTestLogger(), "* * * * *")
	sw.SetNow(at(9, 0))

	if err := sw.Sweep(); err != nil {
		t.Fatalf("Sweep on empty storage failed: %v", err)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStorage()
	sw := New(store, &fakeNotifier{}, newTestLogger(), "* * * * *")

	if err := sw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := sw.Start(); err != nil {
		t.Fatalf("second Start must be a no-op, got: %v", err)
	}
	sw.Stop()
	sw.Stop() // stopping twice is also a no-op
}

func TestStartRejectsBadCronSpec(t *testing.T) {
	store := storage.NewMemoryStorage()
	sw := New(store, &fakeNotifier{}, newTestLogger(), "not a cron spec")

	if err := sw.Start(); err == nil {
		t.Error("expected error for invalid cron spec")
		sw.Stop()
	}
}
