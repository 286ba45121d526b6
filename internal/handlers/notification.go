package handlers

import (
	"Taskvora/internal/config"
	"Taskvora/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// NotificationHandler — счётчик писем и отправка «сейчас».
type NotificationHandler struct {
	Notifications *service.NotificationService
	Logger        *zap.SugaredLogger
	Config        *config.Config
}

func NewNotificationHandler(notifications *service.NotificationService, logger *zap.SugaredLogger, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications, Logger: logger, Config: cfg}
}

func (h *NotificationHandler) EmailCount(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	count, err := h.Notifications.EmailCount(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("failed to get email count", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to get email count")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}

func (h *NotificationHandler) SendNow(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.Notifications.SendToUser(r.Context(), uid, h.Config.NotifyDays); err != nil {
		h.Logger.Errorw("failed to send notification", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to send notification email")
		return
	}
	writeMessage(w, http.StatusOK, true, "Notification email sent to your registered email.")
}
