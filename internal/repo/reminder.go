package repo

import (
	"Taskvora/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// ReminderRepository — контракт доступа к напоминаниям.
type ReminderRepository interface {
	Create(ctx context.Context, rem *model.Reminder) error
	ListByUser(ctx context.Context, userID int64) ([]model.Reminder, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Reminder, error)
	Update(ctx context.Context, rem *model.Reminder) error

	// MarkComplete выставляет флаг и отметку времени. Переход односторонний.
	MarkComplete(ctx context.Context, userID, id int64, at time.Time) error
	Delete(ctx context.Context, userID, id int64) error

	// DueWithin — оконный запрос по всем пользователям: невыполненные
	// напоминания с датой в [сегодня, сегодня+n], с контактами владельца.
	DueWithin(ctx context.Context, n int) ([]model.ReminderDue, error)
	DueWithinForUser(ctx context.Context, userID int64, n int) ([]model.ReminderDue, error)
}

type reminderRepo struct {
	db *gorm.DB
}

// NewReminderRepository создаёт реализацию репозитория для Reminder.
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) Create(ctx context.Context, rem *model.Reminder) error {
	return r.db.WithContext(ctx).Create(rem).Error
}

func (r *reminderRepo) ListByUser(ctx context.Context, userID int64) ([]model.Reminder, error) {
	var out []model.Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reminder_date ASC").
		Find(&out).Error
	return out, err
}

func (r *reminderRepo) GetByID(ctx context.Context, userID, id int64) (*model.Reminder, error) {
	var rem model.Reminder
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rem).Error
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *reminderRepo) Update(ctx context.Context, rem *model.Reminder) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Reminder{}).
		Where("id = ? AND user_id = ?", rem.ID, rem.UserID).
		Updates(map[string]any{
			"title":         rem.Title,
			"description":   rem.Description,
			"reminder_date": rem.ReminderDate,
			"priority":      rem.Priority,
			"category":      rem.Category,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reminderRepo) MarkComplete(ctx context.Context, userID, id int64, at time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Reminder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"is_completed": true,
			"completed_at": at,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reminderRepo) Delete(ctx context.Context, userID, id int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Reminder{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reminderRepo) DueWithin(ctx context.Context, n int) ([]model.ReminderDue, error) {
	from, to := dayWindow(n)
	var out []model.ReminderDue
	err := r.db.WithContext(ctx).
		Table("reminders").
		Select("reminders.id, reminders.user_id, reminders.title, reminders.description, reminders.reminder_date, users.email, users.full_name").
		Joins("JOIN users ON users.id = reminders.user_id").
		Where("reminders.is_completed = ?", false).
		Where("reminders.reminder_date >= ? AND reminders.reminder_date < ?", from, to).
		Order("reminders.reminder_date ASC").
		Scan(&out).Error
	return out, err
}

func (r *reminderRepo) DueWithinForUser(ctx context.Context, userID int64, n int) ([]model.ReminderDue, error) {
	from, to := dayWindow(n)
	var out []model.ReminderDue
	err := r.db.WithContext(ctx).
		Table("reminders").
		Select("reminders.id, reminders.user_id, reminders.title, reminders.description, reminders.reminder_date, users.email, users.full_name").
		Joins("JOIN users ON users.id = reminders.user_id").
		Where("reminders.user_id = ?", userID).
		Where("reminders.is_completed = ?", false).
		Where("reminders.reminder_date >= ? AND reminders.reminder_date < ?", from, to).
		Order("reminders.reminder_date ASC").
		Scan(&out).Error
	return out, err
}
