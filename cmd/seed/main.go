// Command seed populates a fresh database with demo users, masters and an
// approval matrix so the workflow can be exercised end to end.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/procurehub/procurehub/internal/config"
	"github.com/procurehub/procurehub/internal/domain/entity"
	"github.com/procurehub/procurehub/internal/infrastructure/persistence/repository"
	"github.com/procurehub/procurehub/pkg/database"
	"github.com/procurehub/procurehub/pkg/logger"
)

type seedUser struct {
	employeeNumber string
	fullName       string
	email          string
	password       string
	department     string
	location       string
	role           entity.Role
}

func main() {
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

	zapLogger, err := logger.New(logger.Config{Level: "info", OutputPath: "stdout", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, zapLogger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db.DB, zapLogger)
	departmentRepo := repository.NewDepartmentRepository(db.DB, zapLogger)
	locationRepo := repository.NewLocationRepository(db.DB, zapLogger)
	vendorRepo := repository.NewVendorRepository(db.DB, zapLogger)
	inventoryRepo := repository.NewInventoryRepository(db.DB, zapLogger)
	workflowRepo := repository.NewWorkflowRepository(db.DB, zapLogger)

	users := []seedUser{
		{"EMP001", "Admin User", "admin@example.com", "admin123", "IT", "HQ", entity.RoleAdmin},
		{"EMP002", "Alice Approver", "alice@example.com", "alice123", "IT", "HQ", entity.RoleApprover},
		{"EMP003", "Bob Approver", "bob@example.com", "bob123", "IT", "HQ", entity.RoleApprover},
		{"EMP004", "Rita Requester", "rita@example.com", "rita123", "IT", "HQ", entity.RoleRequester},
	}

	userIDs := make(map[string]int64)
	for _, u := range users {
		existing, err := userRepo.GetByEmployeeNumber(ctx, u.employeeNumber)
		if err != nil {
			zapLogger.Fatal("Failed to check user", zap.Error(err))
		}
		if existing != nil {
			userIDs[u.employeeNumber] = existing.ID
			zapLogger.Info("User already exists, skipping", zap.String("employee_number", u.employeeNumber))
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			zapLogger.Fatal("Failed to hash password", zap.Error(err))
		}

		user := &entity.User{
			EmployeeNumber: u.employeeNumber,
			FullName:       u.fullName,
			Email:          u.email,
			PasswordHash:   string(hash),
			Department:     u.department,
			Location:       u.location,
			Role:           u.role,
			IsActive:       true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			zapLogger.Fatal("Failed to create user", zap.String("employee_number", u.employeeNumber), zap.Error(err))
		}
		userIDs[u.employeeNumber] = user.ID
		zapLogger.Info("Seeded user", zap.String("employee_number", u.employeeNumber), zap.String("role", string(u.role)))
	}

	departments, err := departmentRepo.List(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to list departments", zap.Error(err))
	}
	if len(departments) == 0 {
		for _, d := range []entity.Department{
			{Code: "IT", Name: "Information Technology"},
			{Code: "FIN", Name: "Finance"},
			{Code: "OPS", Name: "Operations"},
		} {
			dept := d
			if err := departmentRepo.Create(ctx, &dept); err != nil {
				zapLogger.Fatal("Failed to seed department", zap.Error(err))
			}
		}
		zapLogger.Info("Seeded departments")
	}

	locations, err := locationRepo.List(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to list locations", zap.Error(err))
	}
	if len(locations) == 0 {
		for _, l := range []entity.Location{
			{Code: "HQ", Name: "Headquarters"},
			{Code: "WH1", Name: "Warehouse One"},
		} {
			loc := l
			if err := locationRepo.Create(ctx, &loc); err != nil {
				zapLogger.Fatal("Failed to seed location", zap.Error(err))
			}
		}
		zapLogger.Info("Seeded locations")
	}

	vendors, err := vendorRepo.List(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to list vendors", zap.Error(err))
	}
	if len(vendors) == 0 {
		for _, v := range []entity.Vendor{
			{Name: "Acme Supplies", Email: "sales@acme.example.com"},
			{Name: "TechSource Ltd", Email: "orders@techsource.example.com"},
		} {
			vendor := v
			if err := vendorRepo.Create(ctx, &vendor); err != nil {
				zapLogger.Fatal("Failed to seed vendor", zap.Error(err))
			}
		}
		zapLogger.Info("Seeded vendors")
	}

	inventory, err := inventoryRepo.List(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to list inventory", zap.Error(err))
	}
	if len(inventory) == 0 {
		for _, i := range []entity.InventoryItem{
			{ItemName: "Laptop", UnitOfMeasure: "unit", StockOnHand: 5},
			{ItemName: "Office Chair", UnitOfMeasure: "unit", StockOnHand: 12},
			{ItemName: "A4 Paper", UnitOfMeasure: "ream", StockOnHand: 40},
		} {
			item := i
			if err := inventoryRepo.Create(ctx, &item); err != nil {
				zapLogger.Fatal("Failed to seed inventory item", zap.Error(err))
			}
		}
		zapLogger.Info("Seeded inventory")
	}

	// Two-level IT/HQ chain: Alice approves first, then Bob
	matrix, err := workflowRepo.ListAll(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to list approval matrix", zap.Error(err))
	}
	if len(matrix) == 0 {
		for _, e := range []entity.ApprovalWorkflowEntry{
			{Department: "IT", Location: "HQ", ApprovalLevel: 1, ApproverID: userIDs["EMP002"]},
			{Department: "IT", Location: "HQ", ApprovalLevel: 2, ApproverID: userIDs["EMP003"]},
		} {
			entry := e
			if err := workflowRepo.Create(ctx, &entry); err != nil {
				zapLogger.Fatal("Failed to seed approval matrix entry", zap.Error(err))
			}
		}
		zapLogger.Info("Seeded approval matrix")
	}

	zapLogger.Info("Seed completed")
}
