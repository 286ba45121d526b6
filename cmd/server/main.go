package main

import (
	"Taskvora/internal/config"
	"Taskvora/internal/crypto"
	"Taskvora/internal/handlers"
	"Taskvora/internal/mailer"
	"Taskvora/internal/middleware"
	"Taskvora/internal/repo"
	"Taskvora/internal/scheduler"
	"Taskvora/internal/service"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	// без ключа шифрования хранить секреты нельзя — отказ вместо
	// небезопасного значения по умолчанию
	if cfg.EncryptionKey == "" {
		sugar.Fatalw("ENCRYPTION_KEY is not set, refusing to start")
	}
	key := crypto.DeriveKey(cfg.EncryptionKey)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	passwordRepo := repo.NewPasswordRepository(gormDB)
	reminderRepo := repo.NewReminderRepository(gormDB)
	emailLogRepo := repo.NewEmailLogRepository(gormDB)
	fileRepo := repo.NewFileRepository(gormDB)

	mail := mailer.New(cfg, sugar)

	userService := service.NewUserService(userRepo, cfg.BcryptCost, sugar)
	passwordService := service.NewPasswordService(passwordRepo, key, sugar)
	reminderService := service.NewReminderService(reminderRepo, sugar)
	notificationService := service.NewNotificationService(passwordRepo, reminderRepo, userRepo, emailLogRepo, mail, sugar)
	fileService := service.NewFileService(fileRepo, cfg.UploadDir, sugar)

	if err := userService.EnsureAdmin(ctx); err != nil {
		sugar.Fatalw("failed to ensure admin user", "error", err)
	}

	h := handlers.NewHandler(userService, passwordService, reminderService, notificationService, fileService, sugar, cfg)

	sched := scheduler.New(notificationService, cfg.NotifyDays, sugar)
	sched.Start(ctx)

	addr := cfg.BaseURL
	srv := &http.Server{Addr: addr, Handler: h.Router}

	sugar.Infow("Starting server", "addr", addr)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"DatabaseDSN", cfg.DatabaseDSN,
		"NotifyDays", cfg.NotifyDays,
		"SMTPConfigured", cfg.SMTPConfigured(),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	// graceful shutdown: останавливаем планировщик, HTTP и БД
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	sugar.Infow("Shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("HTTP shutdown failed", "error", err)
	}
	if err := repo.CloseDB(gormDB); err != nil {
		sugar.Errorw("failed to close database", "error", err)
	} else {
		sugar.Infow("Database closed")
	}
}
