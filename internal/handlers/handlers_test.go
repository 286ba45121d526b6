package handlers_test

import (
	"Taskvora/internal/config"
	"Taskvora/internal/crypto"
	"Taskvora/internal/handlers"
	"Taskvora/internal/middleware"
	"Taskvora/internal/model"
	"Taskvora/internal/repo"
	"Taskvora/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

var testKey = crypto.DeriveKey("handler-test-key")

// --- Mocks ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmployeeID(ctx context.Context, employeeID string) (*model.User, error) {
	args := m.Called(ctx, employeeID)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockPasswordRepo struct{ mock.Mock }

func (m *mockPasswordRepo) Create(ctx context.Context, p *model.AppPassword) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPasswordRepo) ListByUser(ctx context.Context, userID int64) ([]model.AppPassword, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.AppPassword); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPasswordRepo) GetByID(ctx context.Context, userID, id int64) (*model.AppPassword, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.AppPassword); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPasswordRepo) Update(ctx context.Context, p *model.AppPassword) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPasswordRepo) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *mockPasswordRepo) ExpiringWithin(ctx context.Context, n int) ([]model.PasswordDue, error) {
	args := m.Called(ctx, n)
	if v, ok := args.Get(0).([]model.PasswordDue); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPasswordRepo) ExpiringWithinForUser(ctx context.Context, userID int64, n int) ([]model.PasswordDue, error) {
	args := m.Called(ctx, userID, n)
	if v, ok := args.Get(0).([]model.PasswordDue); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.PasswordRepository = (*mockPasswordRepo)(nil)

type mockReminderRepo struct{ mock.Mock }

func (m *mockReminderRepo) Create(ctx context.Context, rem *model.Reminder) error {
	args := m.Called(ctx, rem)
	return args.Error(0)
}

func (m *mockReminderRepo) ListByUser(ctx context.Context, userID int64) ([]model.Reminder, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Reminder); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReminderRepo) GetByID(ctx context.Context, userID, id int64) (*model.Reminder, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Reminder); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReminderRepo) Update(ctx context.Context, rem *model.Reminder) error {
	args := m.Called(ctx, rem)
	return args.Error(0)
}

func (m *mockReminderRepo) MarkComplete(ctx context.Context, userID, id int64, at time.Time) error {
	args := m.Called(ctx, userID, id, at)
	return args.Error(0)
}

func (m *mockReminderRepo) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *mockReminderRepo) DueWithin(ctx context.Context, n int) ([]model.ReminderDue, error) {
	args := m.Called(ctx, n)
	if v, ok := args.Get(0).([]model.ReminderDue); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReminderRepo) DueWithinForUser(ctx context.Context, userID int64, n int) ([]model.ReminderDue, error) {
	args := m.Called(ctx, userID, n)
	if v, ok := args.Get(0).([]model.ReminderDue); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ReminderRepository = (*mockReminderRepo)(nil)

type mockEmailLogRepo struct{ mock.Mock }

func (m *mockEmailLogRepo) Append(ctx context.Context, userID int64, emailType string) error {
	args := m.Called(ctx, userID, emailType)
	return args.Error(0)
}

func (m *mockEmailLogRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.EmailLogRepository = (*mockEmailLogRepo)(nil)

type mockFileRepo struct{ mock.Mock }

func (m *mockFileRepo) Create(ctx context.Context, f *model.UploadedFile) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *mockFileRepo) ListByUser(ctx context.Context, userID int64) ([]model.UploadedFile, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.UploadedFile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) GetByID(ctx context.Context, userID, id int64) (*model.UploadedFile, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.UploadedFile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

var _ repo.FileRepository = (*mockFileRepo)(nil)

// noopMailer — письма тестам хендлеров не нужны, но отправка не должна падать.
type noopMailer struct{}

func (noopMailer) Send(_, _, _ string) error { return nil }

// --- Helpers ---

// testRepos — набор моков, из которого собирается полный роутер.
type testRepos struct {
	users     *mockUserRepo
	passwords *mockPasswordRepo
	reminders *mockReminderRepo
	emailLog  *mockEmailLogRepo
	files     *mockFileRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		users:     new(mockUserRepo),
		passwords: new(mockPasswordRepo),
		reminders: new(mockReminderRepo),
		emailLog:  new(mockEmailLogRepo),
		files:     new(mockFileRepo),
	}
}

func newTestRouter(t *testing.T, reps *testRepos) http.Handler {
	t.Helper()

	cfg := &config.Config{AuthSecret: testSecret, NotifyDays: 3}
	logger := zap.NewNop().Sugar()

	userSvc := service.NewUserService(reps.users, 4, logger)
	passwordSvc := service.NewPasswordService(reps.passwords, testKey, logger)
	reminderSvc := service.NewReminderService(reps.reminders, logger)
	notificationSvc := service.NewNotificationService(
		reps.passwords, reps.reminders, reps.users, reps.emailLog, noopMailer{}, logger)
	fileSvc := service.NewFileService(reps.files, t.TempDir(), logger)

	h := handlers.NewHandler(userSvc, passwordSvc, reminderSvc, notificationSvc, fileSvc, logger, cfg)
	return h.Router
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, testSecret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// doJSON выполняет запрос с JSON-телом против роутера.
func doJSON(t *testing.T, router http.Handler, method, path string, body any, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		addAuthCookie(t, req, userID)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
