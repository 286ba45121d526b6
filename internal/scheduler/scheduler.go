// Package scheduler запускает фоновые рассылки уведомлений.
//
// Механизма два, и они нарочно не объединены: суточный интервал со сводным
// письмом на пользователя и две рассылки по времени суток с отдельным
// письмом на каждую запись. У них разная гранулярность писем; слияние
// изменило бы наблюдаемый объём почты.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notifier — нужная планировщику часть сервиса уведомлений.
type Notifier interface {
	SendDailyNotifications(ctx context.Context, days int) error
	PasswordSweep(ctx context.Context) error
	ReminderSweep(ctx context.Context) error
}

// Расписание календарных рассылок.
const (
	passwordSweepHour = 9
	reminderSweepHour = 10
)

// startupDelay — первый сводный прогон вскоре после старта процесса,
// чтобы не ждать сутки до первого письма.
const startupDelay = time.Minute

type Scheduler struct {
	notifier  Notifier
	logger    *zap.SugaredLogger
	lookahead int
}

func New(n Notifier, lookahead int, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{notifier: n, lookahead: lookahead, logger: logger}
}

// Start запускает все задания в фоне. Останов — только отменой ctx при
// завершении процесса; запущенный прогон не прерывается посередине.
func (s *Scheduler) Start(ctx context.Context) {
	go s.runDaily(ctx)
	go s.runAt(ctx, passwordSweepHour, 0, "password sweep", s.notifier.PasswordSweep)
	go s.runAt(ctx, reminderSweepHour, 0, "reminder sweep", s.notifier.ReminderSweep)
	s.logger.Infow("scheduler started", "lookahead_days", s.lookahead)
}

// runDaily — сводная рассылка: раз в сутки плюс один прогон через минуту
// после старта.
func (s *Scheduler) runDaily(ctx context.Context) {
	initial := time.NewTimer(startupDelay)
	defer initial.Stop()

	select {
	case <-ctx.Done():
		return
	case <-initial.C:
		s.runJob(ctx, "daily notifications", func(ctx context.Context) error {
			return s.notifier.SendDailyNotifications(ctx, s.lookahead)
		})
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, "daily notifications", func(ctx context.Context) error {
				return s.notifier.SendDailyNotifications(ctx, s.lookahead)
			})
		}
	}
}

// runAt запускает job каждый день в заданное локальное время.
func (s *Scheduler) runAt(ctx context.Context, hour, minute int, name string, job func(context.Context) error) {
	for {
		wait := time.Until(nextRun(time.Now(), hour, minute))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runJob(ctx, name, job)
		}
	}
}

// runJob изолирует сбои задания: ошибка или паника логируется и не отменяет
// следующие запуски.
func (s *Scheduler) runJob(ctx context.Context, name string, job func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("scheduled job panicked", "job", name, "panic", r)
		}
	}()
	s.logger.Infow("scheduled job started", "job", name)
	if err := job(ctx); err != nil {
		s.logger.Errorw("scheduled job failed", "job", name, "error", err)
		return
	}
	s.logger.Infow("scheduled job finished", "job", name)
}

// nextRun возвращает ближайшее будущее наступление часа и минуты
// в локальной зоне now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
