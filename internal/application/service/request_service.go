package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
	"github.com/procurehub/procurehub/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// SubmitRequestInput is the validated payload for a new purchase request
type SubmitRequestInput struct {
	Title                 string
	Department            string
	Location              string
	RequestDate           time.Time
	BusinessJustification string
}

// ResubmitRequestInput carries the editable fields of a returned request
type ResubmitRequestInput struct {
	Title                 string
	RequestDate           time.Time
	BusinessJustification string
}

// RequestService manages purchase request submission and resubmission
type RequestService interface {
	Submit(ctx context.Context, actor entity.Actor, input SubmitRequestInput) (*entity.PurchaseRequest, error)
	Get(ctx context.Context, actor entity.Actor, id int64) (*entity.PurchaseRequest, error)
	List(ctx context.Context, actor entity.Actor, filter port.RequestFilter) ([]*entity.PurchaseRequest, error)
	Resubmit(ctx context.Context, actor entity.Actor, id int64, input ResubmitRequestInput) (*entity.PurchaseRequest, error)
}

type requestServiceImpl struct {
	requestRepo      port.RequestRepository
	workflowRepo     port.WorkflowRepository
	notificationRepo port.NotificationRepository
	userRepo         port.UserRepository
	txManager        port.TransactionManager
	emailSender      port.EmailSender
	baseURL          string
	logger           Logger
}

// NewRequestService creates a new RequestService
func NewRequestService(
	requestRepo port.RequestRepository,
	workflowRepo port.WorkflowRepository,
	notificationRepo port.NotificationRepository,
	userRepo port.UserRepository,
	txManager port.TransactionManager,
	emailSender port.EmailSender,
	baseURL string,
	logger Logger,
) RequestService {
	return &requestServiceImpl{
		requestRepo:      requestRepo,
		workflowRepo:     workflowRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		emailSender:      emailSender,
		baseURL:          baseURL,
		logger:           logger,
	}
}

// Submit creates a purchase request routed to the level-1 approver for its
// department/location. Refused when no level-1 approver is configured.
func (s *requestServiceImpl) Submit(ctx context.Context, actor entity.Actor, input SubmitRequestInput) (*entity.PurchaseRequest, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	entries, err := s.workflowRepo.GetByDepartmentLocation(ctx, input.Department, input.Location)
	if err != nil {
		return nil, fmt.Errorf("load approval workflow: %w", err)
	}
	chain := workflow.NewChain(entries)
	first, ok := chain.FirstApprover()
	if !ok {
		return nil, entity.ErrNoApproverConfigured
	}

	request := &entity.PurchaseRequest{
		Title:                 input.Title,
		Department:            input.Department,
		Location:              input.Location,
		RequesterID:           actor.UserID,
		RequestDate:           input.RequestDate,
		TotalEstimatedCost:    decimal.Zero,
		BusinessJustification: input.BusinessJustification,
		Status:                entity.StatusPending,
		CurrentApproverID:     &first.ApproverID,
		CurrentApprovalLevel:  1,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		seq, err := s.requestRepo.NextRequisitionSequence(txCtx, input.Department, input.RequestDate.Year())
		if err != nil {
			return fmt.Errorf("next requisition sequence: %w", err)
		}
		request.RequisitionNumber = formatRequisitionNumber(input.Department, input.RequestDate.Year(), seq)

		if err := s.requestRepo.Create(txCtx, request); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		approverNote := &entity.Notification{
			UserID:            first.ApproverID,
			PurchaseRequestID: &request.ID,
			Title:             "Purchase Request Approval Needed",
			Message:           fmt.Sprintf("A new purchase request %s requires your approval.", request.RequisitionNumber),
			Type:              entity.NotificationInfo,
		}
		if err := s.notificationRepo.Create(txCtx, approverNote); err != nil {
			return fmt.Errorf("create approver notification: %w", err)
		}

		requesterNote := &entity.Notification{
			UserID:            actor.UserID,
			PurchaseRequestID: &request.ID,
			Title:             "Purchase Request Submitted",
			Message:           fmt.Sprintf("Your purchase request %s has been submitted successfully.", request.RequisitionNumber),
			Type:              entity.NotificationSuccess,
		}
		if err := s.notificationRepo.Create(txCtx, requesterNote); err != nil {
			return fmt.Errorf("create requester notification: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to submit purchase request", "error", err, "department", input.Department, "location", input.Location)
		return nil, err
	}

	s.logger.Info("Purchase request submitted",
		"id", request.ID,
		"requisition_number", request.RequisitionNumber,
		"approver_id", first.ApproverID,
	)

	// Email fan-out to all configured approvers is best-effort and must not
	// affect the committed transition.
	s.emailApprovers(request)

	return request, nil
}

// Get retrieves a request, visible to its requester, any admin, or the
// current approver.
func (s *requestServiceImpl) Get(ctx context.Context, actor entity.Actor, id int64) (*entity.PurchaseRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, entity.ErrNotFound
	}

	isCurrentApprover := request.CurrentApproverID != nil && *request.CurrentApproverID == actor.UserID
	if request.RequesterID != actor.UserID && actor.Role != entity.RoleAdmin && !isCurrentApprover {
		return nil, entity.ErrForbidden
	}

	return request, nil
}

// List returns requests visible to the actor: admins see everything, other
// users see their own submissions unless they filter on requests awaiting
// their approval.
func (s *requestServiceImpl) List(ctx context.Context, actor entity.Actor, filter port.RequestFilter) ([]*entity.PurchaseRequest, error) {
	if actor.Role != entity.RoleAdmin && filter.CurrentApproverID == 0 {
		filter.RequesterID = actor.UserID
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list purchase requests", "error", err)
		return nil, err
	}
	return requests, nil
}

// Resubmit applies the requester's edits to a returned request and routes it
// back to the freshly resolved level-1 approver.
func (s *requestServiceImpl) Resubmit(ctx context.Context, actor entity.Actor, id int64, input ResubmitRequestInput) (*entity.PurchaseRequest, error) {
	var request *entity.PurchaseRequest

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.requestRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if request == nil {
			return entity.ErrNotFound
		}

		// Only the original requester may edit, and only while returned
		if request.Status != entity.StatusReturned || request.RequesterID != actor.UserID {
			return entity.ErrForbidden
		}

		entries, err := s.workflowRepo.GetByDepartmentLocation(txCtx, request.Department, request.Location)
		if err != nil {
			return fmt.Errorf("load approval workflow: %w", err)
		}
		first, ok := workflow.NewChain(entries).FirstApprover()
		if !ok {
			return entity.ErrNoApproverConfigured
		}

		machine := workflow.NewRequestMachine(workflow.State(request.Status), nil)
		if err := machine.Fire(txCtx, workflow.TriggerResubmit); err != nil {
			return err
		}

		if input.Title != "" {
			request.Title = input.Title
		}
		if !input.RequestDate.IsZero() {
			request.RequestDate = input.RequestDate
		}
		if input.BusinessJustification != "" {
			request.BusinessJustification = input.BusinessJustification
		}
		request.Status = entity.StatusPending
		request.CurrentApproverID = &first.ApproverID
		request.CurrentApprovalLevel = 1

		if err := s.requestRepo.Resubmit(txCtx, request); err != nil {
			return fmt.Errorf("resubmit request: %w", err)
		}

		note := &entity.Notification{
			UserID:            first.ApproverID,
			PurchaseRequestID: &request.ID,
			Title:             "Purchase Request Approval Needed",
			Message:           fmt.Sprintf("A returned purchase request %s has been resubmitted and requires your approval.", request.RequisitionNumber),
			Type:              entity.NotificationInfo,
		}
		if err := s.notificationRepo.Create(txCtx, note); err != nil {
			return fmt.Errorf("create approver notification: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to resubmit purchase request", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("Purchase request resubmitted", "id", request.ID, "requisition_number", request.RequisitionNumber)
	return request, nil
}

// emailApprovers fans the submission out to every configured approver for
// the department/location. Failures are logged and swallowed.
func (s *requestServiceImpl) emailApprovers(request *entity.PurchaseRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		approvers, err := s.userRepo.GetApproversByDepartmentLocation(ctx, request.Department, request.Location)
		if err != nil {
			s.logger.Error("Failed to load approver emails", "error", err, "request_id", request.ID)
			return
		}

		var recipients []string
		for _, a := range approvers {
			if a.Email != "" {
				recipients = append(recipients, a.Email)
			}
		}
		if len(recipients) == 0 {
			return
		}

		link := fmt.Sprintf("%s/purchase-requests/%d", s.baseURL, request.ID)
		if err := s.emailSender.SendApprovalRequest(ctx, recipients, request.RequisitionNumber, request.Department, request.Location, link); err != nil {
			s.logger.Error("Failed to email approvers", "error", err, "request_id", request.ID)
		}
	}()
}

func validateSubmitInput(input SubmitRequestInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", entity.ErrValidation)
	}
	if strings.TrimSpace(input.Department) == "" {
		return fmt.Errorf("%w: department is required", entity.ErrValidation)
	}
	if strings.TrimSpace(input.Location) == "" {
		return fmt.Errorf("%w: location is required", entity.ErrValidation)
	}
	if input.RequestDate.IsZero() {
		return fmt.Errorf("%w: request date is required", entity.ErrValidation)
	}
	return nil
}

// formatRequisitionNumber builds the human-readable department-scoped
// identifier, e.g. PR-IT-2026-0007.
func formatRequisitionNumber(department string, year, seq int) string {
	code := strings.ToUpper(strings.ReplaceAll(department, " ", ""))
	if len(code) > 4 {
		code = code[:4]
	}
	return fmt.Sprintf("PR-%s-%d-%04d", code, year, seq)
}
