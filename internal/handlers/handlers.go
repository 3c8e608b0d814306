package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"medreminder/internal/logger"
	"medreminder/internal/reminder"
	"medreminder/internal/storage"
	"medreminder/internal/tips"
)

var (
	Store storage.Storage
	Mu    sync.Mutex
)

// CreateReminderHandler validates a submitted dosing plan and
// persists the expanded reminder. The end-before-start check lives
// here; the expander and store do not re-validate, so a rejected
// submission never creates a partial reminder.
func CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	var in reminder.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("%s %s %d - Bad Request: %v", r.Method, r.URL.Path, http.StatusBadRequest, err)
		return
	}

	if in.MedicationName == "" {
		http.Error(w, "medication_name is required", http.StatusBadRequest)
		logger.Log.Warnf("%s %s %d - Bad Request: medication_name is required", r.Method, r.URL.Path, http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("%s %s %d - Bad Request: %v", r.Method, r.URL.Path, http.StatusBadRequest, err)
		return
	}

	Mu.Lock()
	created, err := storage.SaveReminder(Store, in)
	Mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		logger.Log.Errorf("%s %s %d - %v", r.Method, r.URL.Path, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
	logger.Log.Infof("%s %s %d", r.Method, r.URL.Path, http.StatusCreated)
}

func ListRemindersHandler(w http.ResponseWriter, r *http.Request) {
	Mu.Lock()
	list, err := Store.LoadReminders()
	Mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		logger.Log.Errorf("%s %s %d - %v", r.Method, r.URL.Path, http.StatusInternalServerError, err)
		return
	}
	if list == nil {
		list = []*reminder.Reminder{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
	logger.Log.Infof("%s %s %d", r.Method, r.URL.Path, http.StatusOK)
}

// DailyTipHandler returns one health tip for the medication named in
// the "medication" query parameter.
func DailyTipHandler(w http.ResponseWriter, r *http.Request) {
	medication := r.URL.Query().Get("medication")
	resp := struct {
		Medication string `json:"medication"`
		Tip        string `json:"tip"`
	}{
		Medication: medication,
		Tip:        tips.DailyTip(medication),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
	logger.Log.Infof("%s %s %d", r.Method, r.URL.Path, http.StatusOK)
}
