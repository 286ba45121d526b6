package model

import "time"

// UploadedFile — запись о загруженном файле. Само содержимое лежит
// в локальном каталоге загрузок под сгенерированным именем.
type UploadedFile struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Filename string `gorm:"not null" json:"filename"`
	Filepath string `gorm:"not null" json:"-"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
