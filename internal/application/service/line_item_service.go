package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/costing"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

var minUnitCost = decimal.NewFromFloat(0.01)

// LineItemInput is the validated payload for a line item. Quantity is the net
// quantity needed after subtracting stock on hand; callers must have already
// parsed string/number ambiguity away before building this struct.
type LineItemInput struct {
	ItemName         string
	RequiredQuantity int
	UnitOfMeasure    string
	RequiredByDate   time.Time
	DeliveryLocation string
	EstimatedCost    decimal.Decimal
	Justification    string
	StockAvailable   int
}

// LineItemService manages line items and keeps the parent request's total
// estimated cost in sync. Every mutation recomputes and persists the total
// inside the same transaction.
type LineItemService interface {
	Create(ctx context.Context, requestID int64, input LineItemInput) (*entity.LineItem, error)
	Update(ctx context.Context, requestID, itemID int64, input LineItemInput) (*entity.LineItem, error)
	Delete(ctx context.Context, requestID, itemID int64) error
	ListByRequest(ctx context.Context, requestID int64) ([]entity.LineItem, error)
}

type lineItemServiceImpl struct {
	lineItemRepo port.LineItemRepository
	requestRepo  port.RequestRepository
	txManager    port.TransactionManager
	logger       Logger
}

// NewLineItemService creates a new LineItemService
func NewLineItemService(
	lineItemRepo port.LineItemRepository,
	requestRepo port.RequestRepository,
	txManager port.TransactionManager,
	logger Logger,
) LineItemService {
	return &lineItemServiceImpl{
		lineItemRepo: lineItemRepo,
		requestRepo:  requestRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create adds a line item and refreshes the request total
func (s *lineItemServiceImpl) Create(ctx context.Context, requestID int64, input LineItemInput) (*entity.LineItem, error) {
	if err := validateLineItemInput(input); err != nil {
		return nil, err
	}

	item := &entity.LineItem{
		PurchaseRequestID: requestID,
		ItemName:          input.ItemName,
		RequiredQuantity:  input.RequiredQuantity,
		UnitOfMeasure:     input.UnitOfMeasure,
		RequiredByDate:    input.RequiredByDate,
		DeliveryLocation:  input.DeliveryLocation,
		EstimatedCost:     input.EstimatedCost,
		Justification:     input.Justification,
		StockAvailable:    input.StockAvailable,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return entity.ErrNotFound
		}

		if err := s.lineItemRepo.Create(txCtx, item); err != nil {
			return fmt.Errorf("create line item: %w", err)
		}

		return s.refreshTotal(txCtx, requestID)
	})
	if err != nil {
		s.logger.Error("Failed to create line item", "error", err, "request_id", requestID)
		return nil, err
	}

	s.logger.Info("Line item created", "id", item.ID, "request_id", requestID)
	return item, nil
}

// Update modifies a line item and refreshes the request total
func (s *lineItemServiceImpl) Update(ctx context.Context, requestID, itemID int64, input LineItemInput) (*entity.LineItem, error) {
	if err := validateLineItemInput(input); err != nil {
		return nil, err
	}

	var item *entity.LineItem

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		item, err = s.lineItemRepo.GetByID(txCtx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.PurchaseRequestID != requestID {
			return entity.ErrNotFound
		}

		item.ItemName = input.ItemName
		item.RequiredQuantity = input.RequiredQuantity
		item.UnitOfMeasure = input.UnitOfMeasure
		item.RequiredByDate = input.RequiredByDate
		item.DeliveryLocation = input.DeliveryLocation
		item.EstimatedCost = input.EstimatedCost
		item.Justification = input.Justification
		item.StockAvailable = input.StockAvailable

		if err := s.lineItemRepo.Update(txCtx, item); err != nil {
			return fmt.Errorf("update line item: %w", err)
		}

		return s.refreshTotal(txCtx, requestID)
	})
	if err != nil {
		s.logger.Error("Failed to update line item", "error", err, "item_id", itemID, "request_id", requestID)
		return nil, err
	}

	s.logger.Info("Line item updated", "id", itemID, "request_id", requestID)
	return item, nil
}

// Delete removes a line item and refreshes the request total
func (s *lineItemServiceImpl) Delete(ctx context.Context, requestID, itemID int64) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		item, err := s.lineItemRepo.GetByID(txCtx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.PurchaseRequestID != requestID {
			return entity.ErrNotFound
		}

		if err := s.lineItemRepo.Delete(txCtx, itemID); err != nil {
			return fmt.Errorf("delete line item: %w", err)
		}

		return s.refreshTotal(txCtx, requestID)
	})
	if err != nil {
		s.logger.Error("Failed to delete line item", "error", err, "item_id", itemID, "request_id", requestID)
		return err
	}

	s.logger.Info("Line item deleted", "id", itemID, "request_id", requestID)
	return nil
}

// ListByRequest returns all line items attached to a request
func (s *lineItemServiceImpl) ListByRequest(ctx context.Context, requestID int64) ([]entity.LineItem, error) {
	items, err := s.lineItemRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		s.logger.Error("Failed to list line items", "error", err, "request_id", requestID)
		return nil, err
	}
	return items, nil
}

func (s *lineItemServiceImpl) refreshTotal(ctx context.Context, requestID int64) error {
	items, err := s.lineItemRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("load line items: %w", err)
	}
	if err := s.requestRepo.UpdateTotalCost(ctx, requestID, costing.Total(items)); err != nil {
		return fmt.Errorf("update total cost: %w", err)
	}
	return nil
}

func validateLineItemInput(input LineItemInput) error {
	if strings.TrimSpace(input.ItemName) == "" {
		return fmt.Errorf("%w: item name is required", entity.ErrValidation)
	}
	if input.RequiredQuantity < 1 {
		return fmt.Errorf("%w: required quantity must be at least 1", entity.ErrValidation)
	}
	if input.EstimatedCost.LessThan(minUnitCost) {
		return fmt.Errorf("%w: estimated cost must be at least 0.01", entity.ErrValidation)
	}
	if input.StockAvailable < 0 {
		return fmt.Errorf("%w: stock available cannot be negative", entity.ErrValidation)
	}
	return nil
}
