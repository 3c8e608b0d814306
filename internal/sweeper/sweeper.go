package sweeper

import (
	"fmt"
	"sync"
	"time"

	"medreminder/internal/notify"
	"medreminder/internal/reminder"
	"medreminder/internal/storage"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper periodically scans all pending notification slots and fires
// the ones whose date and time match the current minute. One Sweeper
// is created by the composition root and started once; there is no
// catch-up for minutes during which the process was not running.
type Sweeper struct {
	store    storage.Storage
	notifier notify.Notifier
	log      *logrus.Logger
	cronSpec string
	now      func() time.Time

	mu      sync.Mutex
	engine  *cron.Cron
	started bool
}

func New(store storage.Storage, notifier notify.Notifier, log *logrus.Logger, cronSpec string) *Sweeper {
	return &Sweeper{
		store:    store,
		notifier: notifier,
		log:      log,
		cronSpec: cronSpec,
		now:      time.Now,
	}
}

// SetNow overrides the clock. Tests use it to pin the sweep instant.
func (s *Sweeper) SetNow(now func() time.Time) {
	s.now = now
}

// Start registers the sweep job and starts the cron engine. Calling
// Start on an already started Sweeper is a no-op; no second timer is
// ever created.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.log.Warn("Sweeper already started, ignoring")
		return nil
	}

	engine := cron.New(cron.WithLocation(time.Local))
	_, err := engine.AddFunc(s.cronSpec, func() {
		if err := s.Sweep(); err != nil {
			s.log.WithError(err).Error("Sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register sweep job: %w", err)
	}

	engine.Start()
	s.engine = engine
	s.started = true
	s.log.WithField("spec", s.cronSpec).Info("Sweeper started")
	return nil
}

// Stop cancels the schedule and waits for a running sweep to finish.
// After Stop the Sweeper can be started again.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	<-s.engine.Stop().Done()
	s.engine = nil
	s.started = false
	s.log.Info("Sweeper stopped")
}

// Sweep performs one pass: every pending slot whose (date, time)
// equals the current minute is fired and marked shown, in reminder
// insertion order then slot generation order. The whole list is
// rewritten once per pass regardless of how many slots changed. A
// failed alert emission is logged but never blocks the shown
// transition.
func (s *Sweeper) Sweep() error {
	reminders, err := s.store.LoadReminders()
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}

	now := s.now()
	currentDate := now.Format(reminder.DateLayout)
	currentTime := now.Format(reminder.TimeLayout)

	fired := 0
	for _, rem := range reminders {
		for i := range rem.Notifications {
			slot := &rem.Notifications[i]
			if slot.Status != reminder.StatusPending ||
				slot.Date != currentDate || slot.Time != currentTime {
				continue
			}
			body := fmt.Sprintf("Time to take %s - %s", rem.MedicationName, rem.Dosage)
			if err := s.notifier.Notify("Medication Reminder", body); err != nil {
				s.log.WithError(err).WithField("slot", slot.ID).Warn("Alert emission failed")
			}
			slot.Status = reminder.StatusShown
			fired++
		}
	}

	if err := s.store.StoreReminders(reminders); err != nil {
		return fmt.Errorf("failed to store reminders: %w", err)
	}
	if fired > 0 {
		s.log.WithFields(logrus.Fields{
			"fired": fired,
			"date":  currentDate,
			"time":  currentTime,
		}).Info("Notifications fired")
	}
	return nil
}
