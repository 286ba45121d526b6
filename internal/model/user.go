package model

import "time"

// Роли учётных записей.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User — учётная запись сотрудника.
type User struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	EmployeeID string `gorm:"uniqueIndex;not null" json:"employee_id"`
	FullName   string `gorm:"not null" json:"full_name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Department string `json:"department"`

	// bcrypt-хеш пароля, наружу не отдаётся
	PasswordHash string `gorm:"not null" json:"-"`

	Role string `gorm:"not null;default:employee" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
