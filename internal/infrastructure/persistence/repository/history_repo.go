package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// HistoryRepository implements port.HistoryRepository
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new approval history repository
func NewHistoryRepository(db *sql.DB, logger *zap.Logger) port.HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends an approval history record. The table is append-only;
// there is no update or delete.
func (r *HistoryRepository) Create(ctx context.Context, history *entity.ApprovalHistory) error {
	query := `
		INSERT INTO approval_history (
			purchase_request_id, approver_id, action, comments, approval_level
		) VALUES (?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		history.PurchaseRequestID,
		history.ApproverID,
		string(history.Action),
		history.Comments,
		history.ApprovalLevel,
	)
	if err != nil {
		r.logger.Error("Failed to create approval history", zap.Error(err))
		return fmt.Errorf("failed to create approval history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	history.ID = id
	return nil
}

// GetByRequestID retrieves the audit trail of a request, oldest first
func (r *HistoryRepository) GetByRequestID(ctx context.Context, requestID int64) ([]entity.ApprovalHistory, error) {
	query := `
		SELECT id, purchase_request_id, approver_id, action, comments,
			approval_level, created_at
		FROM approval_history
		WHERE purchase_request_id = ?
		ORDER BY created_at, id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, requestID)
	if err != nil {
		r.logger.Error("Failed to get approval history", zap.Int64("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval history: %w", err)
	}
	defer rows.Close()

	var records []entity.ApprovalHistory
	for rows.Next() {
		var h entity.ApprovalHistory
		var action string
		err := rows.Scan(
			&h.ID,
			&h.PurchaseRequestID,
			&h.ApproverID,
			&action,
			&h.Comments,
			&h.ApprovalLevel,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval history: %w", err)
		}
		h.Action = entity.ApprovalAction(action)
		records = append(records, h)
	}

	return records, rows.Err()
}

// Verify interface compliance
var _ port.HistoryRepository = (*HistoryRepository)(nil)
