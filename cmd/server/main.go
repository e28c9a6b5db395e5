package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/application/service"
	"github.com/procurehub/procurehub/internal/config"
	"github.com/procurehub/procurehub/internal/infrastructure/email"
	"github.com/procurehub/procurehub/internal/infrastructure/persistence/repository"
	"github.com/procurehub/procurehub/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/procurehub/procurehub/internal/interfaces/http"
	"github.com/procurehub/procurehub/pkg/database"
	"github.com/procurehub/procurehub/pkg/logger"
)

func main() {
	// Local .env is optional; real deployments set env vars directly
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting purchase request service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, zapLogger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Repositories
	requestRepo := repository.NewRequestRepository(db.DB, zapLogger)
	lineItemRepo := repository.NewLineItemRepository(db.DB, zapLogger)
	workflowRepo := repository.NewWorkflowRepository(db.DB, zapLogger)
	historyRepo := repository.NewHistoryRepository(db.DB, zapLogger)
	notificationRepo := repository.NewNotificationRepository(db.DB, zapLogger)
	userRepo := repository.NewUserRepository(db.DB, zapLogger)
	departmentRepo := repository.NewDepartmentRepository(db.DB, zapLogger)
	locationRepo := repository.NewLocationRepository(db.DB, zapLogger)
	vendorRepo := repository.NewVendorRepository(db.DB, zapLogger)
	inventoryRepo := repository.NewInventoryRepository(db.DB, zapLogger)
	txManager := sqlite.NewDB(db.DB, zapLogger)

	// Outbound email
	var emailSender port.EmailSender
	if cfg.Email.Enabled {
		emailSender = email.NewSMTPSender(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		}, zapLogger)
	} else {
		emailSender = email.NewNoopSender(zapLogger)
	}

	// Application services
	svcLogger := logger.NewSugared(zapLogger)
	services := httpserver.Services{
		Auth: service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, svcLogger),
		Request: service.NewRequestService(
			requestRepo, workflowRepo, notificationRepo, userRepo,
			txManager, emailSender, cfg.App.BaseURL, svcLogger,
		),
		LineItem:     service.NewLineItemService(lineItemRepo, requestRepo, txManager, svcLogger),
		Approval:     service.NewApprovalService(requestRepo, workflowRepo, historyRepo, notificationRepo, txManager, svcLogger),
		Notification: service.NewNotificationService(notificationRepo, svcLogger),
		Report:       service.NewReportService(requestRepo, svcLogger),
		Master: service.NewMasterService(
			departmentRepo, locationRepo, vendorRepo, inventoryRepo,
			workflowRepo, userRepo, svcLogger,
		),
	}

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, services, svcLogger)

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		zapLogger.Fatal("Server error", zap.Error(err))
	}

	zapLogger.Info("Server exited successfully")
}
