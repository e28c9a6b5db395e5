package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// RequestRepository implements port.RequestRepository
type RequestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRequestRepository creates a new purchase request repository
func NewRequestRepository(db *sql.DB, logger *zap.Logger) port.RequestRepository {
	return &RequestRepository{
		db:     db,
		logger: logger,
	}
}

const requestColumns = `
	id, requisition_number, title, department, location, requester_id,
	request_date, total_estimated_cost, business_justification, status,
	current_approver_id, current_approval_level, created_at, updated_at
`

// Create inserts a new purchase request
func (r *RequestRepository) Create(ctx context.Context, request *entity.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (
			requisition_number, title, department, location, requester_id,
			request_date, total_estimated_cost, business_justification, status,
			current_approver_id, current_approval_level
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		request.RequisitionNumber,
		request.Title,
		request.Department,
		request.Location,
		request.RequesterID,
		request.RequestDate,
		request.TotalEstimatedCost.String(),
		request.BusinessJustification,
		string(request.Status),
		nullableID(request.CurrentApproverID),
		request.CurrentApprovalLevel,
	)
	if err != nil {
		r.logger.Error("Failed to create purchase request", zap.Error(err))
		return fmt.Errorf("failed to create purchase request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	request.ID = id
	return nil
}

// GetByID retrieves a purchase request by ID
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM purchase_requests WHERE id = ?`

	request, err := scanRequest(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get purchase request", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get purchase request: %w", err)
	}

	return request, nil
}

// List retrieves purchase requests matching the filter, newest first
func (r *RequestRepository) List(ctx context.Context, filter port.RequestFilter) ([]*entity.PurchaseRequest, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Department != "" {
		conditions = append(conditions, "department = ?")
		args = append(args, filter.Department)
	}
	if filter.Location != "" {
		conditions = append(conditions, "location = ?")
		args = append(args, filter.Location)
	}
	if filter.RequesterID != 0 {
		conditions = append(conditions, "requester_id = ?")
		args = append(args, filter.RequesterID)
	}
	if filter.CurrentApproverID != 0 {
		conditions = append(conditions, "current_approver_id = ?")
		args = append(args, filter.CurrentApproverID)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(requisition_number LIKE ? OR title LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	query := `SELECT ` + requestColumns + ` FROM purchase_requests`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list purchase requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list purchase requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.PurchaseRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// Stats aggregates request counts by status. A zero requesterID counts every
// request; otherwise only the requester's own.
func (r *RequestRepository) Stats(ctx context.Context, requesterID int64) (*port.RequestStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'returned' THEN 1 ELSE 0 END), 0)
		FROM purchase_requests
	`
	var args []interface{}
	if requesterID != 0 {
		query += " WHERE requester_id = ?"
		args = append(args, requesterID)
	}

	var stats port.RequestStats
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Approved,
		&stats.Rejected,
		&stats.Returned,
	)
	if err != nil {
		r.logger.Error("Failed to load request stats", zap.Error(err))
		return nil, fmt.Errorf("failed to load request stats: %w", err)
	}

	return &stats, nil
}

// UpdateTotalCost writes the recomputed line item total
func (r *RequestRepository) UpdateTotalCost(ctx context.Context, id int64, total decimal.Decimal) error {
	query := `
		UPDATE purchase_requests
		SET total_estimated_cost = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, total.String(), id)
	if err != nil {
		r.logger.Error("Failed to update total cost", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update total cost: %w", err)
	}

	return nil
}

// ApplyTransition writes one workflow transition. The WHERE clause carries the
// expected status and level so a concurrent transition makes this a no-op,
// reported as entity.ErrConflict.
func (r *RequestRepository) ApplyTransition(ctx context.Context, id int64, update port.TransitionUpdate) error {
	query := `
		UPDATE purchase_requests
		SET status = ?, current_approver_id = ?, current_approval_level = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ? AND current_approval_level = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		string(update.Status),
		nullableID(update.CurrentApproverID),
		update.ApprovalLevel,
		id,
		string(update.ExpectedStatus),
		update.ExpectedLevel,
	)
	if err != nil {
		r.logger.Error("Failed to apply transition", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to apply transition: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: request %d changed concurrently", entity.ErrConflict, id)
	}

	return nil
}

// Resubmit writes the requester's edits together with the reset workflow fields
func (r *RequestRepository) Resubmit(ctx context.Context, request *entity.PurchaseRequest) error {
	query := `
		UPDATE purchase_requests
		SET title = ?, request_date = ?, business_justification = ?,
			status = ?, current_approver_id = ?, current_approval_level = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'returned'
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		request.Title,
		request.RequestDate,
		request.BusinessJustification,
		string(request.Status),
		nullableID(request.CurrentApproverID),
		request.CurrentApprovalLevel,
		request.ID,
	)
	if err != nil {
		r.logger.Error("Failed to resubmit purchase request", zap.Int64("id", request.ID), zap.Error(err))
		return fmt.Errorf("failed to resubmit purchase request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: request %d changed concurrently", entity.ErrConflict, request.ID)
	}

	return nil
}

// NextRequisitionSequence increments and returns the per-department,
// per-year counter behind requisition numbers. Must run inside the
// submission transaction so numbers never collide.
func (r *RequestRepository) NextRequisitionSequence(ctx context.Context, department string, year int) (int, error) {
	upsert := `
		INSERT INTO requisition_sequences (department, year, last_value)
		VALUES (?, ?, 1)
		ON CONFLICT(department, year) DO UPDATE SET last_value = last_value + 1
	`
	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, upsert, department, year); err != nil {
		r.logger.Error("Failed to advance requisition sequence", zap.String("department", department), zap.Error(err))
		return 0, fmt.Errorf("failed to advance requisition sequence: %w", err)
	}

	var seq int
	query := `SELECT last_value FROM requisition_sequences WHERE department = ? AND year = ?`
	if err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, department, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to read requisition sequence: %w", err)
	}

	return seq, nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*entity.PurchaseRequest, error) {
	var request entity.PurchaseRequest
	var totalCost string
	var status string
	var approverID sql.NullInt64

	err := row.Scan(
		&request.ID,
		&request.RequisitionNumber,
		&request.Title,
		&request.Department,
		&request.Location,
		&request.RequesterID,
		&request.RequestDate,
		&totalCost,
		&request.BusinessJustification,
		&status,
		&approverID,
		&request.CurrentApprovalLevel,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	total, err := decimal.NewFromString(totalCost)
	if err != nil {
		return nil, fmt.Errorf("invalid stored total %q: %w", totalCost, err)
	}
	request.TotalEstimatedCost = total
	request.Status = entity.RequestStatus(status)
	if approverID.Valid {
		request.CurrentApproverID = &approverID.Int64
	}

	return &request, nil
}

func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

// Verify interface compliance
var _ port.RequestRepository = (*RequestRepository)(nil)
