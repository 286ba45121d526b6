package service

import (
	"Taskvora/internal/crypto"
	"Taskvora/internal/model"
	"Taskvora/internal/repo"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrEmployeeIDTaken    = errors.New("employee id already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Предустановленный администратор, создаётся при первом старте.
const (
	adminEmployeeID = "ADMIN001"
	adminFullName   = "System Admin"
	adminEmail      = "admin@company.com"
	adminDepartment = "IT"
	adminPassword   = "Admin@123"

	// административная запись хешируется дороже обычных
	adminHashCost = 10
)

// Факторы стоимости, считающиеся устаревшими: при успешном входе хеш
// с таким фактором заменяется на хеш с текущей (низкой) стоимостью.
var legacyHashCosts = map[int]bool{10: true, 8: true, 6: true}

// RegisterInput — структурированный вход регистрации.
type RegisterInput struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

// UserService инкапсулирует регистрацию, вход и бутстрап администратора.
type UserService struct {
	repo   repo.UserRepository
	cost   int
	logger *zap.SugaredLogger
}

func NewUserService(r repo.UserRepository, cost int, logger *zap.SugaredLogger) *UserService {
	return &UserService{repo: r, cost: cost, logger: logger}
}

// Register создаёт учётную запись. Дубликаты email и табельного номера
// отклоняются различимыми ошибками.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if _, err := s.repo.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetUserByEmployeeID(ctx, in.EmployeeID); err == nil {
		return nil, ErrEmployeeIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role != model.RoleAdmin {
		role = model.RoleEmployee
	}

	return s.repo.CreateUser(ctx, &model.User{
		EmployeeID:   in.EmployeeID,
		FullName:     in.FullName,
		Email:        in.Email,
		Department:   in.Department,
		PasswordHash: hash,
		Role:         role,
	})
}

// Login проверяет пароль и при успехе мигрирует хеш с устаревшим фактором
// стоимости на текущий. Хеш меняется только после успешной проверки.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if cost, err := crypto.HashCost(user.PasswordHash); err == nil && legacyHashCosts[cost] {
		if newHash, err := crypto.HashPassword(password, s.cost); err == nil {
			if err := s.repo.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
				s.logger.Warnw("failed to persist rehashed password", "user_id", user.ID, "error", err)
			} else {
				user.PasswordHash = newHash
				s.logger.Infow("rehashed password", "user_id", user.ID, "old_cost", cost, "new_cost", s.cost)
			}
		}
	}

	return user, nil
}

// GetProfile возвращает учётную запись по id.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// EnsureAdmin создаёт предустановленного администратора, если его ещё нет.
func (s *UserService) EnsureAdmin(ctx context.Context) error {
	_, err := s.repo.GetUserByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := crypto.HashPassword(adminPassword, adminHashCost)
	if err != nil {
		return err
	}
	_, err = s.repo.CreateUser(ctx, &model.User{
		EmployeeID:   adminEmployeeID,
		FullName:     adminFullName,
		Email:        adminEmail,
		Department:   adminDepartment,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return err
	}
	s.logger.Infow("admin user created", "email", adminEmail)
	return nil
}
