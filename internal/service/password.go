package service

import (
	"Taskvora/internal/crypto"
	"Taskvora/internal/model"
	"Taskvora/internal/repo"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound — запись не существует или принадлежит другому пользователю.
var ErrNotFound = errors.New("not found")

// PasswordInput — структурированный вход добавления/замены пароля.
type PasswordInput struct {
	AppName            string `json:"app_name"`
	WebsiteURL         string `json:"website_url"`
	Username           string `json:"username"`
	Password           string `json:"password"`
	ExpiryDate         string `json:"expiry_date"`
	DaysBeforeReminder int    `json:"days_before_reminder"`
	Category           string `json:"category"`
	Notes              string `json:"notes"`
	Favorite           bool   `json:"favorite"`
}

// PasswordView — запись для выдачи: расшифрованный секрет плюс
// вычисляемые на лету days_left и status.
type PasswordView struct {
	model.AppPassword
	Password string `json:"password"`
	DaysLeft int    `json:"days_left"`
	Status   string `json:"status"`
}

// PasswordService инкапсулирует работу с сохранёнными паролями.
type PasswordService struct {
	repo   repo.PasswordRepository
	key    []byte
	logger *zap.SugaredLogger
}

func NewPasswordService(r repo.PasswordRepository, key []byte, logger *zap.SugaredLogger) *PasswordService {
	return &PasswordService{repo: r, key: key, logger: logger}
}

// toRecord шифрует секрет и собирает модель из входа. Отсутствующая,
// нечитаемая или прошедшая дата истечения заменяется на «через год» —
// осознанная автокоррекция, не ошибка.
func (s *PasswordService) toRecord(userID int64, in PasswordInput) (*model.AppPassword, error) {
	expiry, err := parseDate(in.ExpiryDate)
	if err != nil || expiry.Before(dateOnly(time.Now())) {
		expiry = dateOnly(time.Now()).AddDate(1, 0, 0)
	}

	enc, err := crypto.EncryptString(in.Password, s.key)
	if err != nil {
		return nil, err
	}

	days := in.DaysBeforeReminder
	if days <= 0 {
		days = 7
	}

	return &model.AppPassword{
		UserID:             userID,
		AppName:            in.AppName,
		WebsiteURL:         in.WebsiteURL,
		Username:           in.Username,
		EncryptedPassword:  enc,
		ExpiryDate:         expiry,
		DaysBeforeReminder: days,
		Category:           in.Category,
		Notes:              in.Notes,
		Favorite:           in.Favorite,
	}, nil
}

// Add сохраняет новый пароль пользователя.
func (s *PasswordService) Add(ctx context.Context, userID int64, in PasswordInput) error {
	rec, err := s.toRecord(userID, in)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, rec)
}

// List возвращает пароли пользователя с расшифрованным секретом и статусом.
// Единичная ошибка расшифровки не прерывает выдачу остальных записей.
func (s *PasswordService) List(ctx context.Context, userID int64) ([]PasswordView, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]PasswordView, 0, len(records))
	for _, rec := range records {
		plain, err := crypto.DecryptString(rec.EncryptedPassword, s.key)
		if err != nil {
			s.logger.Errorw("failed to decrypt stored password", "password_id", rec.ID, "error", err)
			plain = ""
		}
		days := DaysUntil(now, rec.ExpiryDate)
		out = append(out, PasswordView{
			AppPassword: rec,
			Password:    plain,
			DaysLeft:    days,
			Status:      PasswordStatus(days),
		})
	}
	return out, nil
}

// Expiring возвращает пароли пользователя, истекающие в ближайшие days дней.
func (s *PasswordService) Expiring(ctx context.Context, userID int64, days int) ([]PasswordView, error) {
	all, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PasswordView, 0, len(all))
	for _, v := range all {
		if v.DaysLeft >= 0 && v.DaysLeft <= days {
			out = append(out, v)
		}
	}
	return out, nil
}

// Update полностью заменяет поля записи (владелец обязателен).
func (s *PasswordService) Update(ctx context.Context, userID, id int64, in PasswordInput) error {
	rec, err := s.toRecord(userID, in)
	if err != nil {
		return err
	}
	rec.ID = id
	if err := s.repo.Update(ctx, rec); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete удаляет запись по id в пределах пользователя.
func (s *PasswordService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
