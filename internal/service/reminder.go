package service

import (
	"Taskvora/internal/model"
	"Taskvora/internal/repo"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderInput — структурированный вход создания/редактирования напоминания.
type ReminderInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReminderDate string `json:"reminder_date"`
	Priority     string `json:"priority"`
	Category     string `json:"category"`
}

// ReminderView — напоминание с вычисляемыми days_left и status.
type ReminderView struct {
	model.Reminder
	DaysLeft int    `json:"days_left"`
	Status   string `json:"status"`
}

// ReminderService инкапсулирует работу с напоминаниями.
type ReminderService struct {
	repo   repo.ReminderRepository
	logger *zap.SugaredLogger
}

func NewReminderService(r repo.ReminderRepository, logger *zap.SugaredLogger) *ReminderService {
	return &ReminderService{repo: r, logger: logger}
}

// toRecord валидирует вход. Дата в прошлом отклоняется на границе записи.
func (s *ReminderService) toRecord(userID int64, in ReminderInput) (*model.Reminder, error) {
	date, err := parseDate(in.ReminderDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if date.Before(dateOnly(time.Now())) {
		return nil, ErrInvalidDate
	}

	priority := in.Priority
	switch priority {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
	default:
		priority = model.PriorityMedium
	}

	return &model.Reminder{
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		ReminderDate: date,
		Priority:     priority,
		Category:     in.Category,
	}, nil
}

// Add создаёт напоминание.
func (s *ReminderService) Add(ctx context.Context, userID int64, in ReminderInput) error {
	rec, err := s.toRecord(userID, in)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, rec)
}

// List возвращает напоминания пользователя со статусом.
func (s *ReminderService) List(ctx context.Context, userID int64) ([]ReminderView, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]ReminderView, 0, len(records))
	for _, rec := range records {
		days := DaysUntil(now, rec.ReminderDate)
		out = append(out, ReminderView{
			Reminder: rec,
			DaysLeft: days,
			Status:   ReminderStatus(days, rec.IsCompleted),
		})
	}
	return out, nil
}

// Upcoming возвращает невыполненные напоминания в ближайшие days дней.
func (s *ReminderService) Upcoming(ctx context.Context, userID int64, days int) ([]ReminderView, error) {
	all, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ReminderView, 0, len(all))
	for _, v := range all {
		if !v.IsCompleted && v.DaysLeft >= 0 && v.DaysLeft <= days {
			out = append(out, v)
		}
	}
	return out, nil
}

// Update редактирует напоминание (владелец обязателен).
func (s *ReminderService) Update(ctx context.Context, userID, id int64, in ReminderInput) error {
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

// MarkComplete выставляет флаг выполнения. Обратного перехода нет.
func (s *ReminderService) MarkComplete(ctx context.Context, userID, id int64) error {
	if err := s.repo.MarkComplete(ctx, userID, id, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete удаляет напоминание по id в пределах пользователя.
func (s *ReminderService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
