package service

import (
	"math"
	"time"
)

// Статусы паролей по оставшимся дням.
const (
	StatusExpired = "expired"
	StatusWarning = "warning"
	StatusInfo    = "info"
	StatusSafe    = "safe"
)

// Статусы напоминаний.
const (
	StatusOverdue   = "overdue"
	StatusToday     = "today"
	StatusSoon      = "soon"
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
)

// dateOnly усекает время до календарной даты в зоне t.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil возвращает целое число дней от now до target по календарным
// датам: часы/минуты/секунды обнуляются перед вычитанием, поэтому дата
// «сегодня позже по времени» даёт 0, а не отрицательное значение.
func DaysUntil(now, target time.Time) int {
	from := dateOnly(now)
	to := dateOnly(target.In(now.Location()))
	// округление сглаживает 23/25-часовые сутки при переходе на летнее время
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// PasswordStatus отображает оставшиеся дни в статус пароля.
func PasswordStatus(daysLeft int) string {
	switch {
	case daysLeft <= 0:
		return StatusExpired
	case daysLeft <= 7:
		return StatusWarning
	case daysLeft <= 30:
		return StatusInfo
	default:
		return StatusSafe
	}
}

// ReminderStatus отображает оставшиеся дни в статус напоминания.
// Выполненное напоминание всегда completed, независимо от даты.
func ReminderStatus(daysLeft int, completed bool) string {
	switch {
	case completed:
		return StatusCompleted
	case daysLeft < 0:
		return StatusOverdue
	case daysLeft == 0:
		return StatusToday
	case daysLeft <= 3:
		return StatusSoon
	default:
		return StatusUpcoming
	}
}
