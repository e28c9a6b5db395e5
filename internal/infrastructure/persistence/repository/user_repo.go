package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `
	id, employee_number, full_name, email, password_hash, department,
	location, role, is_active, created_at
`

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (
			employee_number, full_name, email, password_hash, department,
			location, role, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		user.EmployeeNumber,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Department,
		user.Location,
		string(user.Role),
		user.IsActive,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmployeeNumber retrieves a user by employee number
func (r *UserRepository) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE employee_number = ?`, employeeNumber)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetApproversByDepartmentLocation retrieves the active users configured as
// approvers for a department/location, in chain order
func (r *UserRepository) GetApproversByDepartmentLocation(ctx context.Context, department, location string) ([]entity.User, error) {
	query := `
		SELECT u.id, u.employee_number, u.full_name, u.email, u.password_hash,
			u.department, u.location, u.role, u.is_active, u.created_at
		FROM users u
		INNER JOIN approval_workflows w ON w.approver_id = u.id
		WHERE w.department = ? AND w.location = ? AND u.is_active = 1
		ORDER BY w.approval_level
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, department, location)
	if err != nil {
		r.logger.Error("Failed to get approvers",
			zap.String("department", department),
			zap.String("location", location),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get approvers: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		r.logger.Error("Failed to update password", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY full_name`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	user, err := scanUser(getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	var role string

	err := row.Scan(
		&user.ID,
		&user.EmployeeNumber,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Department,
		&user.Location,
		&role,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = entity.Role(role)
	return &user, nil
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
