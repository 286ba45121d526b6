package service

import (
	"Taskvora/internal/model"
	"Taskvora/internal/repo"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileService — непрозрачное файловое хранилище: запись в БД плюс файл
// в локальном каталоге под сгенерированным именем.
type FileService struct {
	repo      repo.FileRepository
	uploadDir string
	logger    *zap.SugaredLogger
}

func NewFileService(r repo.FileRepository, uploadDir string, logger *zap.SugaredLogger) *FileService {
	return &FileService{repo: r, uploadDir: uploadDir, logger: logger}
}

// Save сохраняет содержимое на диск и создаёт запись владельца.
func (s *FileService) Save(ctx context.Context, userID int64, filename string, src io.Reader) (*model.UploadedFile, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, err
	}

	// имя на диске не зависит от пользовательского ввода
	stored := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(s.uploadDir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	rec := &model.UploadedFile{UserID: userID, Filename: filename, Filepath: path}
	if err := s.repo.Create(ctx, rec); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return rec, nil
}

// List возвращает записи пользователя, новые первыми.
func (s *FileService) List(ctx context.Context, userID int64) ([]model.UploadedFile, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get возвращает запись по id в пределах пользователя.
func (s *FileService) Get(ctx context.Context, userID, id int64) (*model.UploadedFile, error) {
	f, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete удаляет запись и затем файл; отсутствие файла на диске не ошибка.
func (s *FileService) Delete(ctx context.Context, userID, id int64) error {
	f, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := os.Remove(f.Filepath); err != nil && !os.IsNotExist(err) {
		s.logger.Warnw("failed to remove uploaded file", "path", f.Filepath, "error", err)
	}
	return nil
}
