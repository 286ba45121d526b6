package service

import (
	"Taskvora/internal/mailer"
	"Taskvora/internal/model"
	"Taskvora/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Типы записей журнала отправок.
const (
	emailTypeNotification   = "notification"
	emailTypePasswordExpiry = "password_expiry"
	emailTypeReminder       = "reminder"
)

// Три фиксированных варианта темы сводного письма.
const (
	subjectPasswords = "Your password is expiring soon – please change it"
	subjectReminders = "Your meeting in 2–3 days – Be Ready"
	subjectBoth      = "Taskvora – Password expiring soon & meeting in 2–3 days – Be Ready"
	subjectSummary   = "Taskvora – Your notification summary"
)

const dateLayout = "02 Jan 2006"

// userBatch — накопитель писем одного адресата за прогон.
type userBatch struct {
	userID    int64
	fullName  string
	passwords []model.PasswordDue
	reminders []model.ReminderDue
}

// NotificationService — агрегатор уведомлений: превращает оконные запросы
// в одно письмо на пользователя за прогон и отдаёт их в почтовый шлюз.
type NotificationService struct {
	passwords repo.PasswordRepository
	reminders repo.ReminderRepository
	users     repo.UserRepository
	emailLog  repo.EmailLogRepository
	mailer    mailer.Mailer
	logger    *zap.SugaredLogger
}

func NewNotificationService(
	passwords repo.PasswordRepository,
	reminders repo.ReminderRepository,
	users repo.UserRepository,
	emailLog repo.EmailLogRepository,
	m mailer.Mailer,
	logger *zap.SugaredLogger,
) *NotificationService {
	return &NotificationService{
		passwords: passwords,
		reminders: reminders,
		users:     users,
		emailLog:  emailLog,
		mailer:    m,
		logger:    logger,
	}
}

// SendDailyNotifications отправляет сводные письма по всем пользователям,
// у которых в окне [сегодня, сегодня+days] истекают пароли или наступают
// напоминания. На пользователя — ровно одно письмо за прогон. Состояния
// подавления нет: повторный прогон в тот же день отправит письма заново.
func (s *NotificationService) SendDailyNotifications(ctx context.Context, days int) error {
	expiring, err := s.passwords.ExpiringWithin(ctx, days)
	if err != nil {
		return fmt.Errorf("expiring passwords query: %w", err)
	}
	due, err := s.reminders.DueWithin(ctx, days)
	if err != nil {
		return fmt.Errorf("due reminders query: %w", err)
	}

	// группировка по email владельца; порядок адресатов — по первому вхождению
	batches := map[string]*userBatch{}
	var order []string
	for _, p := range expiring {
		if p.Email == "" {
			continue
		}
		b, ok := batches[p.Email]
		if !ok {
			b = &userBatch{userID: p.UserID, fullName: p.FullName}
			batches[p.Email] = b
			order = append(order, p.Email)
		}
		b.passwords = append(b.passwords, p)
	}
	for _, r := range due {
		if r.Email == "" {
			continue
		}
		b, ok := batches[r.Email]
		if !ok {
			b = &userBatch{userID: r.UserID, fullName: r.FullName}
			batches[r.Email] = b
			order = append(order, r.Email)
		}
		b.reminders = append(b.reminders, r)
	}

	now := time.Now()
	for _, email := range order {
		b := batches[email]
		if len(b.passwords) == 0 && len(b.reminders) == 0 {
			continue
		}
		subject := subjectFor(len(b.passwords) > 0, len(b.reminders) > 0)
		body := buildEmailBody(b.fullName, b.passwords, b.reminders, days, now)

		// сбой одного адресата не прерывает обработку остальных
		if err := s.dispatch(ctx, b.userID, email, subject, body, emailTypeNotification); err != nil {
			s.logger.Errorw("failed to send notification email", "to", email, "error", err)
			continue
		}
		s.logger.Infow("notification email sent", "to", email,
			"passwords", len(b.passwords), "reminders", len(b.reminders))
	}
	return nil
}

// SendToUser отправляет сводку одному пользователю («отправить сейчас»).
// Если в окне пусто, уходит явное письмо «ничего не истекает».
func (s *NotificationService) SendToUser(ctx context.Context, userID int64, days int) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	expiring, err := s.passwords.ExpiringWithinForUser(ctx, userID, days)
	if err != nil {
		return fmt.Errorf("expiring passwords query: %w", err)
	}
	due, err := s.reminders.DueWithinForUser(ctx, userID, days)
	if err != nil {
		return fmt.Errorf("due reminders query: %w", err)
	}

	if len(expiring) == 0 && len(due) == 0 {
		body := fmt.Sprintf(
			"Hi %s,\n\nYou have no passwords expiring in the next %d days and no upcoming reminders in that period.\n\n— Taskvora",
			orThere(user.FullName), days)
		return s.dispatch(ctx, userID, user.Email, subjectSummary, body, emailTypeNotification)
	}

	subject := subjectFor(len(expiring) > 0, len(due) > 0)
	body := buildEmailBody(user.FullName, expiring, due, days, time.Now())
	return s.dispatch(ctx, userID, user.Email, subject, body, emailTypeNotification)
}

// PasswordSweep — календарная рассылка: отдельное письмо на каждый пароль,
// истекающий в ближайшие 3 дня. Однодневное окно считается отдельно и
// логируется как критичное. Гранулярность нарочно отличается от сводной
// рассылки — механизмы сосуществуют, см. scheduler.
func (s *NotificationService) PasswordSweep(ctx context.Context) error {
	expiring, err := s.passwords.ExpiringWithin(ctx, 3)
	if err != nil {
		return fmt.Errorf("expiring passwords query: %w", err)
	}
	critical, err := s.passwords.ExpiringWithin(ctx, 1)
	if err != nil {
		return fmt.Errorf("critical passwords query: %w", err)
	}
	if len(critical) > 0 {
		s.logger.Warnw("passwords expiring within one day", "count", len(critical))
	}

	now := time.Now()
	sent := 0
	for _, p := range expiring {
		daysLeft := DaysUntil(now, p.ExpiryDate)
		subject := "Password Expiry Reminder: " + p.AppName
		body := fmt.Sprintf(
			"Hello %s,\n\nYour password for %s will expire in %d day(s) on %s.\n\nPlease update your password before it expires.\n\nRegards,\nTaskvora Team",
			orThere(p.FullName), p.AppName, daysLeft, p.ExpiryDate.Format(dateLayout))
		if err := s.dispatch(ctx, p.UserID, p.Email, subject, body, emailTypePasswordExpiry); err != nil {
			s.logger.Errorw("failed to send expiry reminder", "to", p.Email, "error", err)
			continue
		}
		sent++
	}
	s.logger.Infow("password expiry sweep finished", "sent", sent)
	return nil
}

// ReminderSweep — календарная рассылка: отдельное письмо на каждое
// напоминание, наступающее в ближайшие 3 дня.
func (s *NotificationService) ReminderSweep(ctx context.Context) error {
	due, err := s.reminders.DueWithin(ctx, 3)
	if err != nil {
		return fmt.Errorf("due reminders query: %w", err)
	}

	now := time.Now()
	sent := 0
	for _, r := range due {
		daysLeft := DaysUntil(now, r.ReminderDate)
		subject := "Reminder: " + r.Title
		var details string
		if r.Description != "" {
			details = "Details: " + r.Description + "\n\n"
		}
		body := fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder for: %s\n\n%sDue in: %d day(s)\nDue Date: %s\n\nRegards,\nTaskvora Team",
			orThere(r.FullName), r.Title, details, daysLeft, r.ReminderDate.Format(dateLayout))
		if err := s.dispatch(ctx, r.UserID, r.Email, subject, body, emailTypeReminder); err != nil {
			s.logger.Errorw("failed to send reminder email", "to", r.Email, "error", err)
			continue
		}
		sent++
	}
	s.logger.Infow("reminder sweep finished", "sent", sent)
	return nil
}

// EmailCount возвращает число отправленных пользователю уведомлений.
func (s *NotificationService) EmailCount(ctx context.Context, userID int64) (int64, error) {
	return s.emailLog.CountByUser(ctx, userID)
}

// dispatch отправляет письмо и пишет строку журнала по факту попытки.
func (s *NotificationService) dispatch(ctx context.Context, userID int64, to, subject, body, emailType string) error {
	if err := s.mailer.Send(to, subject, body); err != nil {
		return err
	}
	if err := s.emailLog.Append(ctx, userID, emailType); err != nil {
		// журнал — вспомогательный счётчик, его сбой не считается сбоем отправки
		s.logger.Warnw("failed to append email log", "user_id", userID, "error", err)
	}
	return nil
}

// subjectFor выбирает один из трёх вариантов темы по составу списков.
func subjectFor(hasPasswords, hasReminders bool) string {
	switch {
	case hasPasswords && !hasReminders:
		return subjectPasswords
	case hasReminders && !hasPasswords:
		return subjectReminders
	default:
		return subjectBoth
	}
}

// buildEmailBody собирает текст сводного письма. Оставшиеся дни считаются
// заново на момент рендеринга, а не на момент выборки.
func buildEmailBody(fullName string, passwords []model.PasswordDue, reminders []model.ReminderDue, days int, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", orThere(fullName))

	if len(passwords) > 0 {
		b.WriteString("Your password is expiring soon – please change it.\n\n")
		fmt.Fprintf(&b, "The following passwords will expire in the next %d day(s):\n", days)
		for _, p := range passwords {
			fmt.Fprintf(&b, "• %s (%s) – expires %s (%s)\n",
				p.AppName, p.Username, p.ExpiryDate.Format(dateLayout), daysText(DaysUntil(now, p.ExpiryDate)))
		}
		b.WriteString("\nPlease update these passwords in Taskvora to keep your accounts secure.\n\n")
	}

	if len(reminders) > 0 {
		fmt.Fprintf(&b, "Your meeting / task is in the next %d day(s) – Be Ready.\n\n", days)
		for _, r := range reminders {
			fmt.Fprintf(&b, "• %s – %s (%s)\n",
				r.Title, r.ReminderDate.Format(dateLayout), daysText(DaysUntil(now, r.ReminderDate)))
		}
		b.WriteString("\nBe prepared. Open your Taskvora dashboard to view details.\n\n")
	}

	b.WriteString("— Taskvora")
	return b.String()
}

func daysText(days int) string {
	if days <= 0 {
		return "today"
	}
	return fmt.Sprintf("in %d day(s)", days)
}

func orThere(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
