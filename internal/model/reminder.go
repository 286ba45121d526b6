package model

import "time"

// Приоритеты напоминаний.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Reminder — напоминание пользователя с датой срабатывания.
type Reminder struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	ReminderDate time.Time `gorm:"not null;index" json:"reminder_date"`
	Priority     string    `gorm:"not null;default:medium" json:"priority"`
	Category     string    `json:"category"`

	// Переход "выполнено" одностороннний: флаг и отметка времени
	// выставляются один раз и обратно не снимаются.
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ReminderDue — строка оконного запроса: напоминание с контактами владельца.
type ReminderDue struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ReminderDate time.Time `json:"reminder_date"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
}
