package service

import (
	"Taskvora/internal/mailer"
	"Taskvora/internal/model"
	"Taskvora/internal/repo"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Моки репозиториев и почтового шлюза для тестов сервисного слоя.

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

// sentEmail — запись перехваченного письма.
type sentEmail struct {
	to      string
	subject string
	body    string
}

// mockMailer собирает отправленные письма; адреса из failFor получают ошибку.
type mockMailer struct {
	sent    []sentEmail
	failFor map[string]error
}

func (m *mockMailer) Send(to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

var _ mailer.Mailer = (*mockMailer)(nil)
