package entity

import "time"

// ApprovalAction is the action recorded in the approval audit trail
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
	ActionReturn  ApprovalAction = "return"
)

// ApprovalHistory is an immutable audit record of one approval action.
// Records are append-only and never mutated or deleted.
type ApprovalHistory struct {
	ID                int64          `json:"id"`
	PurchaseRequestID int64          `json:"purchase_request_id"`
	ApproverID        int64          `json:"approver_id"`
	Action            ApprovalAction `json:"action"`
	Comments          string         `json:"comments"`
	ApprovalLevel     int            `json:"approval_level"`
	CreatedAt         time.Time      `json:"created_at"`
}
