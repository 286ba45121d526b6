package repo

import (
	"Taskvora/internal/model"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает соединение и прогоняет автомиграции.
// Postgres выбирается по схеме DSN, иначе DSN считается путём к файлу SQLite
// (драйвер modernc — без cgo).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.AppPassword{},
		&model.Reminder{},
		&model.UploadedFile{},
		&model.EmailLog{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

// CloseDB закрывает нижележащее соединение (graceful shutdown).
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
