package handlers

import (
	"Taskvora/internal/config"
	"Taskvora/internal/middleware"
	"Taskvora/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	passwordService *service.PasswordService,
	reminderService *service.ReminderService,
	notificationService *service.NotificationService,
	fileService *service.FileService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	passwordHandler := NewPasswordHandler(passwordService, logger)
	reminderHandler := NewReminderHandler(reminderService, logger)
	notificationHandler := NewNotificationHandler(notificationService, logger, config)
	fileHandler := NewFileHandler(fileService, logger)

	// Auth routes
	r.Post("/api/auth/register", userHandler.Register)
	r.Post("/api/auth/login", userHandler.Login)
	r.Get("/api/auth/profile", userHandler.Profile)

	// Password routes
	r.Post("/api/passwords", passwordHandler.Add)
	r.Get("/api/passwords", passwordHandler.List)
	r.Get("/api/passwords/expiring", passwordHandler.Expiring)
	r.Put("/api/passwords/{id}", passwordHandler.Update)
	r.Delete("/api/passwords/{id}", passwordHandler.Delete)

	// Reminder routes
	r.Post("/api/reminders", reminderHandler.Add)
	r.Get("/api/reminders", reminderHandler.List)
	r.Get("/api/reminders/upcoming", reminderHandler.Upcoming)
	r.Put("/api/reminders/{id}", reminderHandler.Update)
	r.Put("/api/reminders/{id}/complete", reminderHandler.Complete)
	r.Delete("/api/reminders/{id}", reminderHandler.Delete)

	// Notification routes
	r.Get("/api/notifications/email-count", notificationHandler.EmailCount)
	r.Post("/api/notifications/send-now", notificationHandler.SendNow)

	// File routes
	r.Get("/api/files", fileHandler.List)
	r.Post("/api/files/upload", fileHandler.Upload)
	r.Get("/api/files/{id}/download", fileHandler.Download)
	r.Delete("/api/files/{id}", fileHandler.Delete)

	// Health check
	r.Get("/api/health", health)

	return &Handler{Router: r}
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"service": "Taskvora",
		"version": "1.0.0",
	})
}

// apiResponse — общий конверт ответа.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, apiResponse{Success: success, Message: message})
}

// requireUser достаёт user_id из контекста; без него — 401.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return 0, false
	}
	return uid, true
}
