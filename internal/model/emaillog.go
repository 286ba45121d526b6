package model

import "time"

// EmailLog — журнал отправленных уведомлений (append-only, используется
// только как счётчик для пользователя).
type EmailLog struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	EmailType string    `gorm:"not null" json:"email_type"`
	SentAt    time.Time `gorm:"autoCreateTime" json:"sent_at"`
}
