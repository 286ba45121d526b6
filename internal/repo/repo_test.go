package repo

import (
	"Taskvora/internal/model"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// newTestDB поднимает изолированную in-memory SQLite на тест.
// Имя базы — из имени теста, чтобы параллельные тесты не делили данные.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{
		DriverName: "sqlite",
		DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.AppPassword{},
		&model.Reminder{},
		&model.UploadedFile{},
		&model.EmailLog{},
	))
	return db
}

// seedUser создаёт пользователя с уникальными email и employee_id.
func seedUser(t *testing.T, db *gorm.DB, n int) *model.User {
	t.Helper()

	u := &model.User{
		EmployeeID:   fmt.Sprintf("EMP%03d", n),
		FullName:     fmt.Sprintf("User %d", n),
		Email:        fmt.Sprintf("user%d@corp.test", n),
		Department:   "IT",
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleEmployee,
	}
	created, err := NewUserRepository(db).CreateUser(context.Background(), u)
	require.NoError(t, err)
	return created
}
