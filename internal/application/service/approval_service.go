package service

import (
	"context"
	"fmt"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
	"github.com/procurehub/procurehub/internal/domain/workflow"
)

// ApprovalOutcome reports where a request landed after an approval action
type ApprovalOutcome struct {
	Status    entity.RequestStatus
	NextLevel int
	Final     bool
}

// ApprovalService drives approve/reject/return transitions.
//
// Approve is restricted to the current approver. Reject and Return only
// require the approver/admin role without a current-approver ownership check,
// matching the long-standing behavior the rest of the product depends on;
// the asymmetry is deliberate pending product clarification.
type ApprovalService interface {
	Approve(ctx context.Context, actor entity.Actor, requestID int64, comments string) (*ApprovalOutcome, error)
	Reject(ctx context.Context, actor entity.Actor, requestID int64, comments string) error
	Return(ctx context.Context, actor entity.Actor, requestID int64, comments string) error
	History(ctx context.Context, requestID int64) ([]entity.ApprovalHistory, error)
}

type approvalServiceImpl struct {
	requestRepo      port.RequestRepository
	workflowRepo     port.WorkflowRepository
	historyRepo      port.HistoryRepository
	notificationRepo port.NotificationRepository
	txManager        port.TransactionManager
	logger           Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	requestRepo port.RequestRepository,
	workflowRepo port.WorkflowRepository,
	historyRepo port.HistoryRepository,
	notificationRepo port.NotificationRepository,
	txManager port.TransactionManager,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		requestRepo:      requestRepo,
		workflowRepo:     workflowRepo,
		historyRepo:      historyRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Approve advances the request one level, or finalizes it when no higher
// level is configured. Only the current approver may act.
func (s *approvalServiceImpl) Approve(ctx context.Context, actor entity.Actor, requestID int64, comments string) (*ApprovalOutcome, error) {
	var outcome *ApprovalOutcome

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return entity.ErrNotFound
		}

		// The guard closes over hasNext, which is only resolved after the
		// cheap checks pass; CanFire does not evaluate guards, so terminal
		// states are rejected without loading the workflow chain.
		var hasNext bool
		machine := workflow.NewRequestMachine(workflow.State(request.Status), func(context.Context) bool {
			return hasNext
		})
		if !machine.CanFire(workflow.TriggerApprove) {
			return fmt.Errorf("%w: cannot approve a %s request", workflow.ErrInvalidTransition, request.Status)
		}

		// Approval level is the authority for who is current; an actor who
		// is not the current approver is rejected outright, which also stops
		// duplicate advancement from a stale client.
		if request.CurrentApproverID == nil || *request.CurrentApproverID != actor.UserID {
			return entity.ErrForbidden
		}

		entries, err := s.workflowRepo.GetByDepartmentLocation(txCtx, request.Department, request.Location)
		if err != nil {
			return fmt.Errorf("load approval workflow: %w", err)
		}
		chain := workflow.NewChain(entries)

		var next entity.ApprovalWorkflowEntry
		next, hasNext = chain.NextApprover(request.CurrentApprovalLevel)

		if err := machine.Fire(txCtx, workflow.TriggerApprove); err != nil {
			return err
		}

		history := &entity.ApprovalHistory{
			PurchaseRequestID: requestID,
			ApproverID:        actor.UserID,
			Action:            entity.ActionApprove,
			Comments:          comments,
			ApprovalLevel:     request.CurrentApprovalLevel,
		}
		if err := s.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("create approval history: %w", err)
		}

		if machine.State() == workflow.StatePending {
			nextLevel := request.CurrentApprovalLevel + 1
			update := port.TransitionUpdate{
				Status:            entity.StatusPending,
				CurrentApproverID: &next.ApproverID,
				ApprovalLevel:     nextLevel,
				ExpectedStatus:    request.Status,
				ExpectedLevel:     request.CurrentApprovalLevel,
			}
			if err := s.requestRepo.ApplyTransition(txCtx, requestID, update); err != nil {
				return err
			}

			note := &entity.Notification{
				UserID:            next.ApproverID,
				PurchaseRequestID: &requestID,
				Title:             "Purchase Request Approval Needed",
				Message:           fmt.Sprintf("A purchase request %s requires your approval (Level %d).", request.RequisitionNumber, nextLevel),
				Type:              entity.NotificationInfo,
			}
			if err := s.notificationRepo.Create(txCtx, note); err != nil {
				return fmt.Errorf("create approver notification: %w", err)
			}

			outcome = &ApprovalOutcome{Status: entity.StatusPending, NextLevel: nextLevel}
			return nil
		}

		update := port.TransitionUpdate{
			Status:            entity.StatusApproved,
			CurrentApproverID: nil,
			ApprovalLevel:     request.CurrentApprovalLevel,
			ExpectedStatus:    request.Status,
			ExpectedLevel:     request.CurrentApprovalLevel,
		}
		if err := s.requestRepo.ApplyTransition(txCtx, requestID, update); err != nil {
			return err
		}

		note := &entity.Notification{
			UserID:            request.RequesterID,
			PurchaseRequestID: &requestID,
			Title:             "Purchase Request Approved",
			Message:           fmt.Sprintf("Your purchase request %s has been fully approved!", request.RequisitionNumber),
			Type:              entity.NotificationSuccess,
		}
		if err := s.notificationRepo.Create(txCtx, note); err != nil {
			return fmt.Errorf("create requester notification: %w", err)
		}

		outcome = &ApprovalOutcome{Status: entity.StatusApproved, NextLevel: request.CurrentApprovalLevel, Final: true}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to approve purchase request", "error", err, "request_id", requestID, "actor_id", actor.UserID)
		return nil, err
	}

	s.logger.Info("Purchase request approved",
		"request_id", requestID,
		"actor_id", actor.UserID,
		"final", outcome.Final,
		"level", outcome.NextLevel,
	)
	return outcome, nil
}

// Reject terminates the request. Any approver or admin may reject a pending
// request regardless of level ownership.
func (s *approvalServiceImpl) Reject(ctx context.Context, actor entity.Actor, requestID int64, comments string) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return entity.ErrNotFound
		}

		if !actor.Role.CanActOnApprovals() {
			return entity.ErrForbidden
		}

		machine := workflow.NewRequestMachine(workflow.State(request.Status), nil)
		if err := machine.Fire(txCtx, workflow.TriggerReject); err != nil {
			return err
		}

		history := &entity.ApprovalHistory{
			PurchaseRequestID: requestID,
			ApproverID:        actor.UserID,
			Action:            entity.ActionReject,
			Comments:          comments,
			ApprovalLevel:     request.CurrentApprovalLevel,
		}
		if err := s.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("create approval history: %w", err)
		}

		update := port.TransitionUpdate{
			Status:            entity.StatusRejected,
			CurrentApproverID: nil,
			ApprovalLevel:     request.CurrentApprovalLevel,
			ExpectedStatus:    request.Status,
			ExpectedLevel:     request.CurrentApprovalLevel,
		}
		if err := s.requestRepo.ApplyTransition(txCtx, requestID, update); err != nil {
			return err
		}

		note := &entity.Notification{
			UserID:            request.RequesterID,
			PurchaseRequestID: &requestID,
			Title:             "Purchase Request Rejected",
			Message:           fmt.Sprintf("Your purchase request %s has been rejected. %s", request.RequisitionNumber, comments),
			Type:              entity.NotificationError,
		}
		if err := s.notificationRepo.Create(txCtx, note); err != nil {
			return fmt.Errorf("create requester notification: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to reject purchase request", "error", err, "request_id", requestID, "actor_id", actor.UserID)
		return err
	}

	s.logger.Info("Purchase request rejected", "request_id", requestID, "actor_id", actor.UserID)
	return nil
}

// Return sends the request back to the requester for revision, resetting the
// chain to level 1. Any approver or admin may return a pending request.
func (s *approvalServiceImpl) Return(ctx context.Context, actor entity.Actor, requestID int64, comments string) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return entity.ErrNotFound
		}

		if !actor.Role.CanActOnApprovals() {
			return entity.ErrForbidden
		}

		machine := workflow.NewRequestMachine(workflow.State(request.Status), nil)
		if err := machine.Fire(txCtx, workflow.TriggerReturn); err != nil {
			return err
		}

		history := &entity.ApprovalHistory{
			PurchaseRequestID: requestID,
			ApproverID:        actor.UserID,
			Action:            entity.ActionReturn,
			Comments:          comments,
			ApprovalLevel:     request.CurrentApprovalLevel,
		}
		if err := s.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("create approval history: %w", err)
		}

		update := port.TransitionUpdate{
			Status:            entity.StatusReturned,
			CurrentApproverID: nil,
			ApprovalLevel:     1,
			ExpectedStatus:    request.Status,
			ExpectedLevel:     request.CurrentApprovalLevel,
		}
		if err := s.requestRepo.ApplyTransition(txCtx, requestID, update); err != nil {
			return err
		}

		note := &entity.Notification{
			UserID:            request.RequesterID,
			PurchaseRequestID: &requestID,
			Title:             "Purchase Request Returned",
			Message:           fmt.Sprintf("Your purchase request %s has been returned for revision. Please review the comments and resubmit.", request.RequisitionNumber),
			Type:              entity.NotificationWarning,
		}
		if err := s.notificationRepo.Create(txCtx, note); err != nil {
			return fmt.Errorf("create requester notification: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to return purchase request", "error", err, "request_id", requestID, "actor_id", actor.UserID)
		return err
	}

	s.logger.Info("Purchase request returned", "request_id", requestID, "actor_id", actor.UserID)
	return nil
}

// History returns the audit trail of a request, oldest first
func (s *approvalServiceImpl) History(ctx context.Context, requestID int64) ([]entity.ApprovalHistory, error) {
	history, err := s.historyRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		s.logger.Error("Failed to load approval history", "error", err, "request_id", requestID)
		return nil, err
	}
	return history, nil
}
