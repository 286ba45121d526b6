package model

import "time"

// AppPassword — сохранённый пароль приложения. Секрет хранится только
// в зашифрованном виде (AES-GCM, общий ключ процесса).
type AppPassword struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	AppName    string `gorm:"not null" json:"app_name"`
	WebsiteURL string `json:"website_url"`
	Username   string `json:"username"`

	// base64(nonce || ciphertext)
	EncryptedPassword string `gorm:"not null" json:"-"`

	ExpiryDate         time.Time `gorm:"not null;index" json:"expiry_date"`
	DaysBeforeReminder int       `gorm:"not null;default:7" json:"days_before_reminder"`
	Category           string    `json:"category"`
	Notes              string    `json:"notes"`
	Favorite           bool      `gorm:"not null;default:false" json:"favorite"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// PasswordDue — строка оконного запроса: пароль с контактами владельца.
type PasswordDue struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	AppName    string    `json:"app_name"`
	Username   string    `json:"username"`
	ExpiryDate time.Time `json:"expiry_date"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
}
