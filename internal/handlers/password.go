package handlers

import (
	"Taskvora/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PasswordHandler обрабатывает CRUD сохранённых паролей.
type PasswordHandler struct {
	Passwords *service.PasswordService
	Logger    *zap.SugaredLogger
}

func NewPasswordHandler(passwords *service.PasswordService, logger *zap.SugaredLogger) *PasswordHandler {
	return &PasswordHandler{Passwords: passwords, Logger: logger}
}

// idParam извлекает числовой {id} из пути.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *PasswordHandler) Add(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in service.PasswordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request")
		return
	}
	if in.AppName == "" {
		writeMessage(w, http.StatusBadRequest, false, "App name is required")
		return
	}

	if err := h.Passwords.Add(r.Context(), uid, in); err != nil {
		h.Logger.Errorw("failed to add password", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to add password")
		return
	}
	writeMessage(w, http.StatusCreated, true, "Password added successfully")
}

func (h *PasswordHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	passwords, err := h.Passwords.List(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("failed to fetch passwords", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to fetch passwords")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "passwords": passwords})
}

func (h *PasswordHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 {
		days = 7
	}

	passwords, err := h.Passwords.Expiring(r.Context(), uid, days)
	if err != nil {
		h.Logger.Errorw("failed to fetch expiring passwords", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to fetch expiring passwords")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"passwords": passwords,
		"count":     len(passwords),
	})
}

func (h *PasswordHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid id")
		return
	}

	var in service.PasswordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request")
		return
	}

	if err := h.Passwords.Update(r.Context(), uid, id, in); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, false, "Password not found")
			return
		}
		h.Logger.Errorw("failed to update password", "user_id", uid, "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to update password")
		return
	}
	writeMessage(w, http.StatusOK, true, "Password updated successfully")
}

func (h *PasswordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid id")
		return
	}

	if err := h.Passwords.Delete(r.Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, false, "Password not found")
			return
		}
		h.Logger.Errorw("failed to delete password", "user_id", uid, "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to delete password")
		return
	}
	writeMessage(w, http.StatusOK, true, "Password deleted successfully")
}
