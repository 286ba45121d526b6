package repo

import (
	"Taskvora/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// dayWindow возвращает границы включительного окна [сегодня, сегодня+n]
// как полуинтервал [from, to): from — локальная полночь, to — полночь
// через n+1 день. Просроченные записи в окно не попадают.
func dayWindow(n int) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, n+1)
}

// PasswordRepository — контракт доступа к сохранённым паролям.
type PasswordRepository interface {
	Create(ctx context.Context, p *model.AppPassword) error

	// ListByUser возвращает все пароли пользователя по возрастанию даты истечения.
	ListByUser(ctx context.Context, userID int64) ([]model.AppPassword, error)
	GetByID(ctx context.Context, userID, id int64) (*model.AppPassword, error)

	// Update — полная замена полей записи (владелец проверяется по паре id+user).
	Update(ctx context.Context, p *model.AppPassword) error
	Delete(ctx context.Context, userID, id int64) error

	// ExpiringWithin — оконный запрос по всем пользователям: пароли с датой
	// истечения в [сегодня, сегодня+n], с email и именем владельца.
	ExpiringWithin(ctx context.Context, n int) ([]model.PasswordDue, error)
	ExpiringWithinForUser(ctx context.Context, userID int64, n int) ([]model.PasswordDue, error)
}

type passwordRepo struct {
	db *gorm.DB
}

// NewPasswordRepository создаёт реализацию репозитория для AppPassword.
func NewPasswordRepository(db *gorm.DB) PasswordRepository {
	return &passwordRepo{db: db}
}

func (r *passwordRepo) Create(ctx context.Context, p *model.AppPassword) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *passwordRepo) ListByUser(ctx context.Context, userID int64) ([]model.AppPassword, error) {
	var out []model.AppPassword
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry_date ASC").
		Find(&out).Error
	return out, err
}

func (r *passwordRepo) GetByID(ctx context.Context, userID, id int64) (*model.AppPassword, error) {
	var p model.AppPassword
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *passwordRepo) Update(ctx context.Context, p *model.AppPassword) error {
	tx := r.db.WithContext(ctx).
		Model(&model.AppPassword{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Updates(map[string]any{
			"app_name":             p.AppName,
			"website_url":          p.WebsiteURL,
			"username":             p.Username,
			"encrypted_password":   p.EncryptedPassword,
			"expiry_date":          p.ExpiryDate,
			"days_before_reminder": p.DaysBeforeReminder,
			"category":             p.Category,
			"notes":                p.Notes,
			"favorite":             p.Favorite,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *passwordRepo) Delete(ctx context.Context, userID, id int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.AppPassword{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *passwordRepo) ExpiringWithin(ctx context.Context, n int) ([]model.PasswordDue, error) {
	from, to := dayWindow(n)
	var out []model.PasswordDue
	err := r.db.WithContext(ctx).
		Table("app_passwords").
		Select("app_passwords.id, app_passwords.user_id, app_passwords.app_name, app_passwords.username, app_passwords.expiry_date, users.email, users.full_name").
		Joins("JOIN users ON users.id = app_passwords.user_id").
		Where("app_passwords.expiry_date >= ? AND app_passwords.expiry_date < ?", from, to).
		Order("app_passwords.expiry_date ASC").
		Scan(&out).Error
	return out, err
}

func (r *passwordRepo) ExpiringWithinForUser(ctx context.Context, userID int64, n int) ([]model.PasswordDue, error) {
	from, to := dayWindow(n)
	var out []model.PasswordDue
	err := r.db.WithContext(ctx).
		Table("app_passwords").
		Select("app_passwords.id, app_passwords.user_id, app_passwords.app_name, app_passwords.username, app_passwords.expiry_date, users.email, users.full_name").
		Joins("JOIN users ON users.id = app_passwords.user_id").
		Where("app_passwords.user_id = ?", userID).
		Where("app_passwords.expiry_date >= ? AND app_passwords.expiry_date < ?", from, to).
		Order("app_passwords.expiry_date ASC").
		Scan(&out).Error
	return out, err
}
