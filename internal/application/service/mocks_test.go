package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// Mock repositories

type mockRequestRepo struct {
	createFunc          func(ctx context.Context, request *entity.PurchaseRequest) error
	getByIDFunc         func(ctx context.Context, id int64) (*entity.PurchaseRequest, error)
	listFunc            func(ctx context.Context, filter port.RequestFilter) ([]*entity.PurchaseRequest, error)
	statsFunc           func(ctx context.Context, requesterID int64) (*port.RequestStats, error)
	updateTotalCostFunc func(ctx context.Context, id int64, total decimal.Decimal) error
	applyTransitionFunc func(ctx context.Context, id int64, update port.TransitionUpdate) error
	resubmitFunc        func(ctx context.Context, request *entity.PurchaseRequest) error
	nextSequenceFunc    func(ctx context.Context, department string, year int) (int, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, request *entity.PurchaseRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, request)
	}
	request.ID = 1
	return nil
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRequestRepo) List(ctx context.Context, filter port.RequestFilter) ([]*entity.PurchaseRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockRequestRepo) Stats(ctx context.Context, requesterID int64) (*port.RequestStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, requesterID)
	}
	return &port.RequestStats{}, nil
}

func (m *mockRequestRepo) UpdateTotalCost(ctx context.Context, id int64, total decimal.Decimal) error {
	if m.updateTotalCostFunc != nil {
		return m.updateTotalCostFunc(ctx, id, total)
	}
	return nil
}

func (m *mockRequestRepo) ApplyTransition(ctx context.Context, id int64, update port.TransitionUpdate) error {
	if m.applyTransitionFunc != nil {
		return m.applyTransitionFunc(ctx, id, update)
	}
	return nil
}

func (m *mockRequestRepo) Resubmit(ctx context.Context, request *entity.PurchaseRequest) error {
	if m.resubmitFunc != nil {
		return m.resubmitFunc(ctx, request)
	}
	return nil
}

func (m *mockRequestRepo) NextRequisitionSequence(ctx context.Context, department string, year int) (int, error) {
	if m.nextSequenceFunc != nil {
		return m.nextSequenceFunc(ctx, department, year)
	}
	return 1, nil
}

type mockWorkflowRepo struct {
	getByDepartmentLocationFunc func(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error)
}

func (m *mockWorkflowRepo) GetByDepartmentLocation(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error) {
	if m.getByDepartmentLocationFunc != nil {
		return m.getByDepartmentLocationFunc(ctx, department, location)
	}
	return nil, nil
}

func (m *mockWorkflowRepo) ListAll(ctx context.Context) ([]entity.ApprovalWorkflowEntry, error) {
	return nil, nil
}

func (m *mockWorkflowRepo) Create(ctx context.Context, e *entity.ApprovalWorkflowEntry) error {
	return nil
}

func (m *mockWorkflowRepo) Update(ctx context.Context, e *entity.ApprovalWorkflowEntry) error {
	return nil
}

func (m *mockWorkflowRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type mockHistoryRepo struct {
	createFunc func(ctx context.Context, history *entity.ApprovalHistory) error
	records    []entity.ApprovalHistory
}

func (m *mockHistoryRepo) Create(ctx context.Context, history *entity.ApprovalHistory) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, history)
	}
	m.records = append(m.records, *history)
	return nil
}

func (m *mockHistoryRepo) GetByRequestID(ctx context.Context, requestID int64) ([]entity.ApprovalHistory, error) {
	return m.records, nil
}

type mockNotificationRepo struct {
	createFunc func(ctx context.Context, notification *entity.Notification) error
	created    []entity.Notification
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, notification)
	}
	m.created = append(m.created, *notification)
	return nil
}

func (m *mockNotificationRepo) GetByUserID(ctx context.Context, userID int64) ([]entity.Notification, error) {
	return m.created, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	return nil
}

type mockLineItemRepo struct {
	createFunc         func(ctx context.Context, item *entity.LineItem) error
	getByIDFunc        func(ctx context.Context, id int64) (*entity.LineItem, error)
	getByRequestIDFunc func(ctx context.Context, requestID int64) ([]entity.LineItem, error)
	updateFunc         func(ctx context.Context, item *entity.LineItem) error
	deleteFunc         func(ctx context.Context, id int64) error
}

func (m *mockLineItemRepo) Create(ctx context.Context, item *entity.LineItem) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	item.ID = 1
	return nil
}

func (m *mockLineItemRepo) GetByID(ctx context.Context, id int64) (*entity.LineItem, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockLineItemRepo) GetByRequestID(ctx context.Context, requestID int64) ([]entity.LineItem, error) {
	if m.getByRequestIDFunc != nil {
		return m.getByRequestIDFunc(ctx, requestID)
	}
	return nil, nil
}

func (m *mockLineItemRepo) Update(ctx context.Context, item *entity.LineItem) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, item)
	}
	return nil
}

func (m *mockLineItemRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockUserRepo struct {
	getByIDFunc                          func(ctx context.Context, id int64) (*entity.User, error)
	getByEmployeeNumberFunc              func(ctx context.Context, employeeNumber string) (*entity.User, error)
	getByEmailFunc                       func(ctx context.Context, email string) (*entity.User, error)
	getApproversByDepartmentLocationFunc func(ctx context.Context, department, location string) ([]entity.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	user.ID = 1
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*entity.User, error) {
	if m.getByEmployeeNumberFunc != nil {
		return m.getByEmployeeNumberFunc(ctx, employeeNumber)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetApproversByDepartmentLocation(ctx context.Context, department, location string) ([]entity.User, error) {
	if m.getApproversByDepartmentLocationFunc != nil {
		return m.getApproversByDepartmentLocationFunc(ctx, department, location)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]entity.User, error) {
	return nil, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockEmailSender struct {
	sendFunc func(ctx context.Context, recipients []string, requisitionNumber, department, location, link string) error
}

func (m *mockEmailSender) SendApprovalRequest(ctx context.Context, recipients []string, requisitionNumber, department, location, link string) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, recipients, requisitionNumber, department, location, link)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
