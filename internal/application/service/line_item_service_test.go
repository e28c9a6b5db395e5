package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

func lineItemInput() LineItemInput {
	return LineItemInput{
		ItemName:         "ThinkPad T14",
		RequiredQuantity: 3,
		UnitOfMeasure:    "pcs",
		RequiredByDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		DeliveryLocation: "HQ",
		EstimatedCost:    decimal.RequireFromString("1299.00"),
		Justification:    "Replacements for the onboarding pool",
		StockAvailable:   0,
	}
}

func TestLineItemService_CreateRefreshesTotal(t *testing.T) {
	var total decimal.Decimal
	requestRepo := &mockRequestRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
			return pendingRequest(1, 10), nil
		},
		updateTotalCostFunc: func(ctx context.Context, id int64, t decimal.Decimal) error {
			total = t
			return nil
		},
	}
	lineItemRepo := &mockLineItemRepo{
		getByRequestIDFunc: func(ctx context.Context, requestID int64) ([]entity.LineItem, error) {
			return []entity.LineItem{
				{RequiredQuantity: 3, EstimatedCost: decimal.RequireFromString("1299.00")},
				{RequiredQuantity: 1, EstimatedCost: decimal.RequireFromString("49.50")},
			}, nil
		},
	}

	svc := NewLineItemService(lineItemRepo, requestRepo, &mockTxManager{}, &mockLogger{})

	item, err := svc.Create(context.Background(), 7, lineItemInput())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if item.ID == 0 || item.PurchaseRequestID != 7 {
		t.Errorf("item = %+v, want persisted against request 7", item)
	}
	if !total.Equal(decimal.RequireFromString("3946.50")) {
		t.Errorf("total = %s, want 3946.50", total)
	}
}

func TestLineItemService_CreateParentNotFound(t *testing.T) {
	svc := NewLineItemService(&mockLineItemRepo{}, &mockRequestRepo{}, &mockTxManager{}, &mockLogger{})

	_, err := svc.Create(context.Background(), 99, lineItemInput())
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Create() error = %v, want ErrNotFound", err)
	}
}

func TestLineItemService_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LineItemInput)
	}{
		{"empty item name", func(in *LineItemInput) { in.ItemName = " " }},
		{"zero quantity", func(in *LineItemInput) { in.RequiredQuantity = 0 }},
		{"negative quantity", func(in *LineItemInput) { in.RequiredQuantity = -2 }},
		{"cost below minimum", func(in *LineItemInput) { in.EstimatedCost = decimal.RequireFromString("0.005") }},
		{"zero cost", func(in *LineItemInput) { in.EstimatedCost = decimal.Zero }},
		{"negative stock", func(in *LineItemInput) { in.StockAvailable = -1 }},
	}

	svc := NewLineItemService(&mockLineItemRepo{}, &mockRequestRepo{}, &mockTxManager{}, &mockLogger{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := lineItemInput()
			tt.mutate(&input)

			if _, err := svc.Create(context.Background(), 7, input); !errors.Is(err, entity.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLineItemService_UpdateAppliesFields(t *testing.T) {
	existing := &entity.LineItem{
		ID:                4,
		PurchaseRequestID: 7,
		ItemName:          "ThinkPad T14",
		RequiredQuantity:  3,
		EstimatedCost:     decimal.RequireFromString("1299.00"),
	}

	var saved *entity.LineItem
	lineItemRepo := &mockLineItemRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.LineItem, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, item *entity.LineItem) error {
			saved = item
			return nil
		},
	}

	svc := NewLineItemService(lineItemRepo, &mockRequestRepo{}, &mockTxManager{}, &mockLogger{})

	input := lineItemInput()
	input.RequiredQuantity = 5
	input.EstimatedCost = decimal.RequireFromString("1199.00")

	item, err := svc.Update(context.Background(), 7, 4, input)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if saved.RequiredQuantity != 5 || !saved.EstimatedCost.Equal(decimal.RequireFromString("1199.00")) {
		t.Errorf("saved item = %+v, edits not applied", saved)
	}
	if item.ID != 4 {
		t.Errorf("item.ID = %d, want 4", item.ID)
	}
}

func TestLineItemService_UpdateItemFromAnotherRequest(t *testing.T) {
	lineItemRepo := &mockLineItemRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.LineItem, error) {
			return &entity.LineItem{ID: 4, PurchaseRequestID: 8}, nil
		},
	}

	svc := NewLineItemService(lineItemRepo, &mockRequestRepo{}, &mockTxManager{}, &mockLogger{})

	// The item exists but belongs to request 8, not 7
	_, err := svc.Update(context.Background(), 7, 4, lineItemInput())
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestLineItemService_DeleteRefreshesTotal(t *testing.T) {
	var deleted int64
	var total decimal.Decimal

	lineItemRepo := &mockLineItemRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.LineItem, error) {
			return &entity.LineItem{ID: 4, PurchaseRequestID: 7}, nil
		},
		deleteFunc: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
		getByRequestIDFunc: func(ctx context.Context, requestID int64) ([]entity.LineItem, error) {
			return nil, nil
		},
	}
	requestRepo := &mockRequestRepo{
		updateTotalCostFunc: func(ctx context.Context, id int64, t decimal.Decimal) error {
			total = t
			return nil
		},
	}

	svc := NewLineItemService(lineItemRepo, requestRepo, &mockTxManager{}, &mockLogger{})

	if err := svc.Delete(context.Background(), 7, 4); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted id = %d, want 4", deleted)
	}
	// Removing the last item brings the total back to zero
	if !total.Equal(decimal.Zero) {
		t.Errorf("total = %s, want 0", total)
	}
}

func TestLineItemService_DeleteNotFound(t *testing.T) {
	svc := NewLineItemService(&mockLineItemRepo{}, &mockRequestRepo{}, &mockTxManager{}, &mockLogger{})

	if err := svc.Delete(context.Background(), 7, 99); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
