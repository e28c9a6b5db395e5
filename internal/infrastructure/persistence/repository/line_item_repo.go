package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// LineItemRepository implements port.LineItemRepository
type LineItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLineItemRepository creates a new line item repository
func NewLineItemRepository(db *sql.DB, logger *zap.Logger) port.LineItemRepository {
	return &LineItemRepository{
		db:     db,
		logger: logger,
	}
}

const lineItemColumns = `
	id, purchase_request_id, item_name, required_quantity, unit_of_measure,
	required_by_date, delivery_location, estimated_cost, justification,
	stock_available, created_at
`

// Create inserts a new line item
func (r *LineItemRepository) Create(ctx context.Context, item *entity.LineItem) error {
	query := `
		INSERT INTO line_items (
			purchase_request_id, item_name, required_quantity, unit_of_measure,
			required_by_date, delivery_location, estimated_cost, justification,
			stock_available
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		item.PurchaseRequestID,
		item.ItemName,
		item.RequiredQuantity,
		item.UnitOfMeasure,
		item.RequiredByDate,
		item.DeliveryLocation,
		item.EstimatedCost.String(),
		item.Justification,
		item.StockAvailable,
	)
	if err != nil {
		r.logger.Error("Failed to create line item", zap.Error(err))
		return fmt.Errorf("failed to create line item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	item.ID = id
	return nil
}

// GetByID retrieves a line item by ID
func (r *LineItemRepository) GetByID(ctx context.Context, id int64) (*entity.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE id = ?`

	item, err := scanLineItem(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get line item", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get line item: %w", err)
	}

	return item, nil
}

// GetByRequestID retrieves all line items of a purchase request
func (r *LineItemRepository) GetByRequestID(ctx context.Context, requestID int64) ([]entity.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE purchase_request_id = ? ORDER BY id`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, requestID)
	if err != nil {
		r.logger.Error("Failed to list line items", zap.Int64("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

// Update rewrites the editable fields of a line item
func (r *LineItemRepository) Update(ctx context.Context, item *entity.LineItem) error {
	query := `
		UPDATE line_items
		SET item_name = ?, required_quantity = ?, unit_of_measure = ?,
			required_by_date = ?, delivery_location = ?, estimated_cost = ?,
			justification = ?, stock_available = ?
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		item.ItemName,
		item.RequiredQuantity,
		item.UnitOfMeasure,
		item.RequiredByDate,
		item.DeliveryLocation,
		item.EstimatedCost.String(),
		item.Justification,
		item.StockAvailable,
		item.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update line item", zap.Int64("id", item.ID), zap.Error(err))
		return fmt.Errorf("failed to update line item: %w", err)
	}

	return nil
}

// Delete removes a line item
func (r *LineItemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM line_items WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete line item", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete line item: %w", err)
	}

	return nil
}

func scanLineItem(row rowScanner) (*entity.LineItem, error) {
	var item entity.LineItem
	var cost string

	err := row.Scan(
		&item.ID,
		&item.PurchaseRequestID,
		&item.ItemName,
		&item.RequiredQuantity,
		&item.UnitOfMeasure,
		&item.RequiredByDate,
		&item.DeliveryLocation,
		&cost,
		&item.Justification,
		&item.StockAvailable,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	estimated, err := decimal.NewFromString(cost)
	if err != nil {
		return nil, fmt.Errorf("invalid stored cost %q: %w", cost, err)
	}
	item.EstimatedCost = estimated

	return &item, nil
}

// Verify interface compliance
var _ port.LineItemRepository = (*LineItemRepository)(nil)
