package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

// RequestFilter narrows request listings
type RequestFilter struct {
	Status            string
	Department        string
	Location          string
	Search            string
	RequesterID       int64
	CurrentApproverID int64
}

// TransitionUpdate carries the workflow fields written by a single transition.
// ExpectedStatus and ExpectedLevel form the optimistic concurrency guard: the
// update must only apply if the row still matches them, and report
// entity.ErrConflict otherwise.
type TransitionUpdate struct {
	Status            entity.RequestStatus
	CurrentApproverID *int64
	ApprovalLevel     int
	ExpectedStatus    entity.RequestStatus
	ExpectedLevel     int
}

// RequestStats aggregates request counts by status
type RequestStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Returned int `json:"returned"`
}

// RequestRepository defines persistence operations for PurchaseRequest
type RequestRepository interface {
	Create(ctx context.Context, request *entity.PurchaseRequest) error
	GetByID(ctx context.Context, id int64) (*entity.PurchaseRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]*entity.PurchaseRequest, error)
	Stats(ctx context.Context, requesterID int64) (*RequestStats, error)
	UpdateTotalCost(ctx context.Context, id int64, total decimal.Decimal) error
	ApplyTransition(ctx context.Context, id int64, update TransitionUpdate) error
	Resubmit(ctx context.Context, request *entity.PurchaseRequest) error
	NextRequisitionSequence(ctx context.Context, department string, year int) (int, error)
}

// LineItemRepository defines persistence operations for LineItem
type LineItemRepository interface {
	Create(ctx context.Context, item *entity.LineItem) error
	GetByID(ctx context.Context, id int64) (*entity.LineItem, error)
	GetByRequestID(ctx context.Context, requestID int64) ([]entity.LineItem, error)
	Update(ctx context.Context, item *entity.LineItem) error
	Delete(ctx context.Context, id int64) error
}

// WorkflowRepository provides read-only lookup of the configured approval matrix
type WorkflowRepository interface {
	GetByDepartmentLocation(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error)
	ListAll(ctx context.Context) ([]entity.ApprovalWorkflowEntry, error)
	Create(ctx context.Context, e *entity.ApprovalWorkflowEntry) error
	Update(ctx context.Context, e *entity.ApprovalWorkflowEntry) error
	Delete(ctx context.Context, id int64) error
}

// HistoryRepository defines persistence for the append-only approval audit trail
type HistoryRepository interface {
	Create(ctx context.Context, history *entity.ApprovalHistory) error
	GetByRequestID(ctx context.Context, requestID int64) ([]entity.ApprovalHistory, error)
}

// NotificationRepository defines persistence operations for Notification
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID int64) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetApproversByDepartmentLocation(ctx context.Context, department, location string) ([]entity.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context) ([]entity.User, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
