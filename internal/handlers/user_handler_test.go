package handlers_test

import (
	"Taskvora/internal/crypto"
	"Taskvora/internal/model"
	"Taskvora/internal/service"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestAuth_Register(t *testing.T) {
	registerBody := service.RegisterInput{
		EmployeeID: "EMP042",
		FullName:   "Ivan Petrov",
		Email:      "ivan@corp.test",
		Department: "IT",
		Password:   "s3cret!",
	}

	t.Run("ok", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		reps.users.On("GetUserByEmail", mock.Anything, "ivan@corp.test").
			Return(nil, gorm.ErrRecordNotFound).Once()
		reps.users.On("GetUserByEmployeeID", mock.Anything, "EMP042").
			Return(nil, gorm.ErrRecordNotFound).Once()
		reps.users.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).
			Return(&model.User{ID: 1}, nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody, 0)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "User registered successfully")
		reps.users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		reps.users.On("GetUserByEmail", mock.Anything, "ivan@corp.test").
			Return(&model.User{ID: 7, Email: "ivan@corp.test"}, nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody, 0)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email already exists. Please use a different email.")
	})

	t.Run("duplicate employee id", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		reps.users.On("GetUserByEmail", mock.Anything, "ivan@corp.test").
			Return(nil, gorm.ErrRecordNotFound).Once()
		reps.users.On("GetUserByEmployeeID", mock.Anything, "EMP042").
			Return(&model.User{ID: 7, EmployeeID: "EMP042"}, nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody, 0)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Employee ID already exists. Please use a different Employee ID.")
	})

	t.Run("missing fields", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		rr := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{"email": "x@y.z"}, 0)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuth_Login(t *testing.T) {
	hash, err := crypto.HashPassword("s3cret!", 4)
	if err != nil {
		t.Fatal(err)
	}
	stored := &model.User{ID: 9, Email: "ivan@corp.test", FullName: "Ivan Petrov", PasswordHash: hash}

	t.Run("ok sets cookie and returns token", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		reps.users.On("GetUserByEmail", mock.Anything, "ivan@corp.test").Return(stored, nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "ivan@corp.test", "password": "s3cret!"}, 0)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Success bool        `json:"success"`
			Token   string      `json:"token"`
			User    *model.User `json:"user"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		if assert.NotNil(t, resp.User) {
			assert.Equal(t, int64(9), resp.User.ID)
		}

		var authCookie bool
		for _, c := range rr.Result().Cookies() {
			if c.Name == "auth_token" && c.Value != "" {
				authCookie = true
			}
		}
		assert.True(t, authCookie, "auth_token cookie must be set")
	})

	t.Run("wrong password", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		reps.users.On("GetUserByEmail", mock.Anything, "ivan@corp.test").Return(stored, nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "ivan@corp.test", "password": "wrong"}, 0)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
	})

	t.Run("unknown email", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		reps.users.On("GetUserByEmail", mock.Anything, "nobody@corp.test").
			Return(nil, gorm.ErrRecordNotFound).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "nobody@corp.test", "password": "s3cret!"}, 0)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuth_Profile(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		reps.users.On("GetUserByID", mock.Anything, int64(9)).
			Return(&model.User{ID: 9, Email: "ivan@corp.test"}, nil).Once()

		rr := doJSON(t, router, http.MethodGet, "/api/auth/profile", nil, 9)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "ivan@corp.test")
	})

	t.Run("unauthorized without token", func(t *testing.T) {
		reps := newTestRepos()
		router := newTestRouter(t, reps)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
