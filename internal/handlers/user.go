package handlers

import (
	"Taskvora/internal/config"
	"Taskvora/internal/middleware"
	"Taskvora/internal/model"
	"Taskvora/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и профиль.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

// Register создаёт учётную запись. Дубликаты email и табельного номера
// возвращают различимые сообщения.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request")
		return
	}
	if in.Email == "" || in.EmployeeID == "" || in.Password == "" {
		writeMessage(w, http.StatusBadRequest, false, "Email, Employee ID and password are required")
		return
	}

	_, err := h.UserService.Register(r.Context(), in)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, false, "Email already exists. Please use a different email.")
	case errors.Is(err, service.ErrEmployeeIDTaken):
		writeMessage(w, http.StatusBadRequest, false, "Employee ID already exists. Please use a different Employee ID.")
	case err != nil:
		h.Logger.Errorw("registration failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Registration failed")
	default:
		writeMessage(w, http.StatusCreated, true, "User registered successfully")
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

// Login проверяет пароль, выпускает JWT и ставит auth-cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request")
		return
	}

	user, err := h.UserService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, false, "Invalid credentials")
			return
		}
		h.Logger.Errorw("login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Login failed")
		return
	}

	token, err := middleware.BuildJWTString(user.ID, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("failed to build token", "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Login failed")
		return
	}
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("failed to set auth cookie", "error", err)
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Profile возвращает учётную запись текущего пользователя.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("failed to fetch profile", "user_id", uid, "error", err)
		writeMessage(w, http.StatusNotFound, false, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}
