package handlers

import (
	"Taskvora/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ReminderHandler обрабатывает CRUD напоминаний.
type ReminderHandler struct {
	Reminders *service.ReminderService
	Logger    *zap.SugaredLogger
}

func NewReminderHandler(reminders *service.ReminderService, logger *zap.SugaredLogger) *ReminderHandler {
	return &ReminderHandler{Reminders: reminders, Logger: logger}
}

func (h *ReminderHandler) Add(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in service.ReminderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request")
		return
	}
	if in.Title == "" {
		writeMessage(w, http.StatusBadRequest, false, "Title is required")
		return
	}

	if err := h.Reminders.Add(r.Context(), uid, in); err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeMessage(w, http.StatusBadRequest, false, "Invalid reminder date")
			return
		}
		h.Logger.Errorw("failed to add reminder", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to add reminder")
		return
	}
	writeMessage(w, http.StatusCreated, true, "Reminder added successfully")
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	reminders, err := h.Reminders.List(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("failed to fetch reminders", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to fetch reminders")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "reminders": reminders})
}

func (h *ReminderHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 {
		days = 7
	}

	reminders, err := h.Reminders.Upcoming(r.Context(), uid, days)
	if err != nil {
		h.Logger.Errorw("failed to fetch upcoming reminders", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to fetch upcoming reminders")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"reminders": reminders,
		"count":     len(reminders),
	})
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid id")
		return
	}

	var in service.ReminderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request")
		return
	}

	if err := h.Reminders.Update(r.Context(), uid, id, in); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			writeMessage(w, http.StatusBadRequest, false, "Invalid reminder date")
		case errors.Is(err, service.ErrNotFound):
			writeMessage(w, http.StatusNotFound, false, "Reminder not found")
		default:
			h.Logger.Errorw("failed to update reminder", "user_id", uid, "id", id, "error", err)
			writeMessage(w, http.StatusInternalServerError, false, "Failed to update reminder")
		}
		return
	}
	writeMessage(w, http.StatusOK, true, "Reminder updated successfully")
}

func (h *ReminderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid id")
		return
	}

	if err := h.Reminders.MarkComplete(r.Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, false, "Reminder not found")
			return
		}
		h.Logger.Errorw("failed to complete reminder", "user_id", uid, "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to update reminder")
		return
	}
	writeMessage(w, http.StatusOK, true, "Reminder marked as complete")
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid id")
		return
	}

	if err := h.Reminders.Delete(r.Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, false, "Reminder not found")
			return
		}
		h.Logger.Errorw("failed to delete reminder", "user_id", uid, "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to delete reminder")
		return
	}
	writeMessage(w, http.StatusOK, true, "Reminder deleted successfully")
}
