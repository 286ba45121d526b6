package repo

import (
	"Taskvora/internal/model"
	"context"

	"gorm.io/gorm"
)

// FileRepository — контракт доступа к записям о загруженных файлах.
type FileRepository interface {
	Create(ctx context.Context, f *model.UploadedFile) error
	ListByUser(ctx context.Context, userID int64) ([]model.UploadedFile, error)
	GetByID(ctx context.Context, userID, id int64) (*model.UploadedFile, error)
	Delete(ctx context.Context, userID, id int64) error
}

type fileRepo struct {
	db *gorm.DB
}

// NewFileRepository создаёт реализацию репозитория для UploadedFile.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, f *model.UploadedFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fileRepo) ListByUser(ctx context.Context, userID int64) ([]model.UploadedFile, error) {
	var out []model.UploadedFile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&out).Error
	return out, err
}

func (r *fileRepo) GetByID(ctx context.Context, userID, id int64) (*model.UploadedFile, error) {
	var f model.UploadedFile
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) Delete(ctx context.Context, userID, id int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.UploadedFile{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
