package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

func newRequestServiceForTest(
	requestRepo *mockRequestRepo,
	workflowRepo *mockWorkflowRepo,
	notificationRepo *mockNotificationRepo,
	userRepo *mockUserRepo,
	emailSender *mockEmailSender,
) RequestService {
	return NewRequestService(
		requestRepo,
		workflowRepo,
		notificationRepo,
		userRepo,
		&mockTxManager{},
		emailSender,
		"http://localhost:3000",
		&mockLogger{},
	)
}

func submitInput() SubmitRequestInput {
	return SubmitRequestInput{
		Title:                 "Laptops for onboarding",
		Department:            "IT",
		Location:              "HQ",
		RequestDate:           time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		BusinessJustification: "Five new hires in September",
	}
}

func TestRequestService_Submit(t *testing.T) {
	var created *entity.PurchaseRequest
	requestRepo := &mockRequestRepo{
		createFunc: func(ctx context.Context, request *entity.PurchaseRequest) error {
			request.ID = 42
			created = request
			return nil
		},
	}
	workflowRepo := &mockWorkflowRepo{
		getByDepartmentLocationFunc: func(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error) {
			return twoLevelChain(), nil
		},
	}
	notificationRepo := &mockNotificationRepo{}

	svc := newRequestServiceForTest(requestRepo, workflowRepo, notificationRepo, &mockUserRepo{}, &mockEmailSender{})

	request, err := svc.Submit(context.Background(), entity.Actor{UserID: 5, Role: entity.RoleRequester}, submitInput())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if request.RequisitionNumber != "PR-IT-2026-0001" {
		t.Errorf("RequisitionNumber = %q, want PR-IT-2026-0001", request.RequisitionNumber)
	}
	if request.Status != entity.StatusPending || request.CurrentApprovalLevel != 1 {
		t.Errorf("request = %+v, want pending at level 1", request)
	}
	if created.CurrentApproverID == nil || *created.CurrentApproverID != 10 {
		t.Errorf("CurrentApproverID = %v, want level-1 approver 10", created.CurrentApproverID)
	}

	// One notification for the level-1 approver, one confirming to the requester
	if len(notificationRepo.created) != 2 {
		t.Fatalf("notifications = %d, want 2", len(notificationRepo.created))
	}
	if notificationRepo.created[0].UserID != 10 || notificationRepo.created[1].UserID != 5 {
		t.Errorf("notification recipients = [%d, %d], want [10, 5]",
			notificationRepo.created[0].UserID, notificationRepo.created[1].UserID)
	}
}

func TestRequestService_SubmitEmailsApprovers(t *testing.T) {
	workflowRepo := &mockWorkflowRepo{
		getByDepartmentLocationFunc: func(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error) {
			return twoLevelChain(), nil
		},
	}
	userRepo := &mockUserRepo{
		getApproversByDepartmentLocationFunc: func(ctx context.Context, department, location string) ([]entity.User, error) {
			return []entity.User{
				{ID: 10, Email: "alice@example.com"},
				{ID: 20, Email: "bob@example.com"},
			}, nil
		},
	}

	sent := make(chan []string, 1)
	emailSender := &mockEmailSender{
		sendFunc: func(ctx context.Context, recipients []string, requisitionNumber, department, location, link string) error {
			sent <- recipients
			return nil
		},
	}

	svc := newRequestServiceForTest(&mockRequestRepo{}, workflowRepo, &mockNotificationRepo{}, userRepo, emailSender)

	if _, err := svc.Submit(context.Background(), entity.Actor{UserID: 5, Role: entity.RoleRequester}, submitInput()); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	select {
	case recipients := <-sent:
		if len(recipients) != 2 {
			t.Errorf("recipients = %v, want both approver emails", recipients)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("approver email was never sent")
	}
}

func TestRequestService_SubmitWithoutLevelOneApprover(t *testing.T) {
	workflowRepo := &mockWorkflowRepo{
		getByDepartmentLocationFunc: func(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error) {
			return []entity.ApprovalWorkflowEntry{
				{Department: "IT", Location: "HQ", ApprovalLevel: 2, ApproverID: 20},
			}, nil
		},
	}

	svc := newRequestServiceForTest(&mockRequestRepo{}, workflowRepo, &mockNotificationRepo{}, &mockUserRepo{}, &mockEmailSender{})

	_, err := svc.Submit(context.Background(), entity.Actor{UserID: 5, Role: entity.RoleRequester}, submitInput())
	if !errors.Is(err, entity.ErrNoApproverConfigured) {
		t.Errorf("Submit() error = %v, want ErrNoApproverConfigured", err)
	}
}

func TestRequestService_SubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitRequestInput)
	}{
		{"missing title", func(in *SubmitRequestInput) { in.Title = "  " }},
		{"missing department", func(in *SubmitRequestInput) { in.Department = "" }},
		{"missing location", func(in *SubmitRequestInput) { in.Location = "" }},
		{"missing request date", func(in *SubmitRequestInput) { in.RequestDate = time.Time{} }},
	}

	svc := newRequestServiceForTest(&mockRequestRepo{}, &mockWorkflowRepo{}, &mockNotificationRepo{}, &mockUserRepo{}, &mockEmailSender{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := submitInput()
			tt.mutate(&input)

			_, err := svc.Submit(context.Background(), entity.Actor{UserID: 5, Role: entity.RoleRequester}, input)
			if !errors.Is(err, entity.ErrValidation) {
				t.Errorf("Submit() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRequestService_SubmitSequencePerDepartmentYear(t *testing.T) {
	requestRepo := &mockRequestRepo{
		nextSequenceFunc: func(ctx context.Context, department string, year int) (int, error) {
			if department != "IT" || year != 2026 {
				return 0, fmt.Errorf("unexpected sequence key %s/%d", department, year)
			}
			return 17, nil
		},
	}
	workflowRepo := &mockWorkflowRepo{
		getByDepartmentLocationFunc: func(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error) {
			return twoLevelChain(), nil
		},
	}

	svc := newRequestServiceForTest(requestRepo, workflowRepo, &mockNotificationRepo{}, &mockUserRepo{}, &mockEmailSender{})

	request, err := svc.Submit(context.Background(), entity.Actor{UserID: 5, Role: entity.RoleRequester}, submitInput())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if request.RequisitionNumber != "PR-IT-2026-0017" {
		t.Errorf("RequisitionNumber = %q, want PR-IT-2026-0017", request.RequisitionNumber)
	}
}

func TestFormatRequisitionNumber(t *testing.T) {
	tests := []struct {
		department string
		year       int
		seq        int
		want       string
	}{
		{"IT", 2026, 1, "PR-IT-2026-0001"},
		{"Finance", 2026, 12, "PR-FINA-2026-0012"},
		{"Op s", 2025, 9999, "PR-OPS-2025-9999"},
	}

	for _, tt := range tests {
		if got := formatRequisitionNumber(tt.department, tt.year, tt.seq); got != tt.want {
			t.Errorf("formatRequisitionNumber(%q, %d, %d) = %q, want %q", tt.department, tt.year, tt.seq, got, tt.want)
		}
	}
}

func TestRequestService_GetVisibility(t *testing.T) {
	request := pendingRequest(1, 10)

	requestRepo := &mockRequestRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
			return request, nil
		},
	}

	svc := newRequestServiceForTest(requestRepo, &mockWorkflowRepo{}, &mockNotificationRepo{}, &mockUserRepo{}, &mockEmailSender{})

	tests := []struct {
		name    string
		actor   entity.Actor
		wantErr error
	}{
		{"requester", entity.Actor{UserID: 5, Role: entity.RoleRequester}, nil},
		{"current approver", entity.Actor{UserID: 10, Role: entity.RoleApprover}, nil},
		{"admin", entity.Actor{UserID: 99, Role: entity.RoleAdmin}, nil},
		{"unrelated user", entity.Actor{UserID: 77, Role: entity.RoleRequester}, entity.ErrForbidden},
		{"non-current approver", entity.Actor{UserID: 20, Role: entity.RoleApprover}, entity.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(context.Background(), tt.actor, 7)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestService_ListScopesNonAdmins(t *testing.T) {
	var seen port.RequestFilter
	requestRepo := &mockRequestRepo{
		listFunc: func(ctx context.Context, filter port.RequestFilter) ([]*entity.PurchaseRequest, error) {
			seen = filter
			return nil, nil
		},
	}

	svc := newRequestServiceForTest(requestRepo, &mockWorkflowRepo{}, &mockNotificationRepo{}, &mockUserRepo{}, &mockEmailSender{})

	if _, err := svc.List(context.Background(), entity.Actor{UserID: 5, Role: entity.RoleRequester}, port.RequestFilter{}); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if seen.RequesterID != 5 {
		t.Errorf("filter.RequesterID = %d, want actor scoped to own requests", seen.RequesterID)
	}

	if _, err := svc.List(context.Background(), entity.Actor{UserID: 1, Role: entity.RoleAdmin}, port.RequestFilter{}); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if seen.RequesterID != 0 {
		t.Errorf("filter.RequesterID = %d, want unscoped for admin", seen.RequesterID)
	}
}

func TestRequestService_ListPendingApprovalKeepsApproverFilter(t *testing.T) {
	var seen port.RequestFilter
	requestRepo := &mockRequestRepo{
		listFunc: func(ctx context.Context, filter port.RequestFilter) ([]*entity.PurchaseRequest, error) {
			seen = filter
			return nil, nil
		},
	}

	svc := newRequestServiceForTest(requestRepo, &mockWorkflowRepo{}, &mockNotificationRepo{}, &mockUserRepo{}, &mockEmailSender{})

	filter := port.RequestFilter{CurrentApproverID: 10, Status: string(entity.StatusPending)}
	if _, err := svc.List(context.Background(), entity.Actor{UserID: 10, Role: entity.RoleApprover}, filter); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if seen.RequesterID != 0 || seen.CurrentApproverID != 10 {
		t.Errorf("filter = %+v, want approver inbox query left untouched", seen)
	}
}

func TestRequestService_Resubmit(t *testing.T) {
	request := pendingRequest(1, 10)
	request.Status = entity.StatusReturned
	request.CurrentApproverID = nil

	var saved *entity.PurchaseRequest
	requestRepo := &mockRequestRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
			return request, nil
		},
		resubmitFunc: func(ctx context.Context, r *entity.PurchaseRequest) error {
			saved = r
			return nil
		},
	}
	workflowRepo := &mockWorkflowRepo{
		getByDepartmentLocationFunc: func(ctx context.Context, department, location string) ([]entity.ApprovalWorkflowEntry, error) {
			return twoLevelChain(), nil
		},
	}
	notificationRepo := &mockNotificationRepo{}

	svc := newRequestServiceForTest(requestRepo, workflowRepo, notificationRepo, &mockUserRepo{}, &mockEmailSender{})

	input := ResubmitRequestInput{Title: "Laptops, revised", BusinessJustification: "Trimmed to three units"}
	updated, err := svc.Resubmit(context.Background(), entity.Actor{UserID: 5, Role: entity.RoleRequester}, 7, input)
	if err != nil {
		t.Fatalf("Resubmit() failed: %v", err)
	}

	if updated.Status != entity.StatusPending || updated.CurrentApprovalLevel != 1 {
		t.Errorf("request = %+v, want pending back at level 1", updated)
	}
	if updated.Title != "Laptops, revised" {
		t.Errorf("Title = %q, edits not applied", updated.Title)
	}
	if saved.CurrentApproverID == nil || *saved.CurrentApproverID != 10 {
		t.Errorf("CurrentApproverID = %v, want re-resolved level-1 approver 10", saved.CurrentApproverID)
	}
	if len(notificationRepo.created) != 1 || notificationRepo.created[0].UserID != 10 {
		t.Errorf("notifications = %+v, want one for the level-1 approver", notificationRepo.created)
	}
}

func TestRequestService_ResubmitByWrongUser(t *testing.T) {
	request := pendingRequest(1, 10)
	request.Status = entity.StatusReturned

	requestRepo := &mockRequestRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
			return request, nil
		},
	}

	svc := newRequestServiceForTest(requestRepo, &mockWorkflowRepo{}, &mockNotificationRepo{}, &mockUserRepo{}, &mockEmailSender{})

	_, err := svc.Resubmit(context.Background(), entity.Actor{UserID: 77, Role: entity.RoleRequester}, 7, ResubmitRequestInput{})
	if !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Resubmit() error = %v, want ErrForbidden", err)
	}
}

func TestRequestService_ResubmitPendingRequest(t *testing.T) {
	requestRepo := &mockRequestRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
			return pendingRequest(1, 10), nil
		},
	}

	svc := newRequestServiceForTest(requestRepo, &mockWorkflowRepo{}, &mockNotificationRepo{}, &mockUserRepo{}, &mockEmailSender{})

	// A request still in flight cannot be edited
	_, err := svc.Resubmit(context.Background(), entity.Actor{UserID: 5, Role: entity.RoleRequester}, 7, ResubmitRequestInput{})
	if !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Resubmit() error = %v, want ErrForbidden", err)
	}
}
