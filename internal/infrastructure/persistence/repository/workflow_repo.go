package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// WorkflowRepository implements port.WorkflowRepository
type WorkflowRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWorkflowRepository creates a new approval matrix repository
func NewWorkflowRepository(db *sql.DB, logger *zap.Logger) port.WorkflowRepository {
	return &WorkflowRepository{
		db:     db,
		logger: logger,
	}
}

// GetByDepartmentLocation retrieves the approval chain for a department and
// location, ordered by level
func (r *WorkflowRepository) GetByDepartmentLocation(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error) {
	query := `
		SELECT id, department, location, approval_level, approver_id
		FROM approval_workflows
		WHERE department = ? AND location = ?
		ORDER BY approval_level
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, department, location)
	if err != nil {
		r.logger.Error("Failed to get approval workflow",
			zap.String("department", department),
			zap.String("location", location),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get approval workflow: %w", err)
	}
	defer rows.Close()

	return collectWorkflowEntries(rows)
}

// ListAll retrieves every configured approval matrix entry
func (r *WorkflowRepository) ListAll(ctx context.Context) ([]entity.ApprovalWorkflowEntry, error) {
	query := `
		SELECT id, department, location, approval_level, approver_id
		FROM approval_workflows
		ORDER BY department, location, approval_level
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list approval workflows", zap.Error(err))
		return nil, fmt.Errorf("failed to list approval workflows: %w", err)
	}
	defer rows.Close()

	return collectWorkflowEntries(rows)
}

// Create inserts an approval matrix entry
func (r *WorkflowRepository) Create(ctx context.Context, e *entity.ApprovalWorkflowEntry) error {
	query := `
		INSERT INTO approval_workflows (department, location, approval_level, approver_id)
		VALUES (?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		e.Department, e.Location, e.ApprovalLevel, e.ApproverID)
	if err != nil {
		r.logger.Error("Failed to create approval workflow entry", zap.Error(err))
		return fmt.Errorf("failed to create approval workflow entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	e.ID = id
	return nil
}

// Update rewrites an approval matrix entry
func (r *WorkflowRepository) Update(ctx context.Context, e *entity.ApprovalWorkflowEntry) error {
	query := `
		UPDATE approval_workflows
		SET department = ?, location = ?, approval_level = ?, approver_id = ?
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		e.Department, e.Location, e.ApprovalLevel, e.ApproverID, e.ID)
	if err != nil {
		r.logger.Error("Failed to update approval workflow entry", zap.Int64("id", e.ID), zap.Error(err))
		return fmt.Errorf("failed to update approval workflow entry: %w", err)
	}

	return nil
}

// Delete removes an approval matrix entry
func (r *WorkflowRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM approval_workflows WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete approval workflow entry", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete approval workflow entry: %w", err)
	}

	return nil
}

func collectWorkflowEntries(rows *sql.Rows) ([]entity.ApprovalWorkflowEntry, error) {
	var entries []entity.ApprovalWorkflowEntry
	for rows.Next() {
		var e entity.ApprovalWorkflowEntry
		if err := rows.Scan(&e.ID, &e.Department, &e.Location, &e.ApprovalLevel, &e.ApproverID); err != nil {
			return nil, fmt.Errorf("failed to scan approval workflow entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Verify interface compliance
var _ port.WorkflowRepository = (*WorkflowRepository)(nil)
