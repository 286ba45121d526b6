package repo

import (
	"Taskvora/internal/model"
	"context"

	"gorm.io/gorm"
)

// EmailLogRepository — журнал уведомлений: только добавление и подсчёт.
type EmailLogRepository interface {
	Append(ctx context.Context, userID int64, emailType string) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type emailLogRepo struct {
	db *gorm.DB
}

// NewEmailLogRepository создаёт реализацию репозитория для EmailLog.
func NewEmailLogRepository(db *gorm.DB) EmailLogRepository {
	return &emailLogRepo{db: db}
}

func (r *emailLogRepo) Append(ctx context.Context, userID int64, emailType string) error {
	entry := &model.EmailLog{UserID: userID, EmailType: emailType}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *emailLogRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.EmailLog{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}
