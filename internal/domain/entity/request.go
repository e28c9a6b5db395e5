package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle status of a purchase request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
	StatusReturned RequestStatus = "returned"
)

// PurchaseRequest represents a submitted purchase request routed through
// the department/location approval chain.
//
// When Status is pending, CurrentApproverID and CurrentApprovalLevel identify
// the single user allowed to approve next. Terminal statuses (approved,
// rejected) clear the approver; returned clears the approver and resets the
// level to 1 until the requester resubmits.
type PurchaseRequest struct {
	ID                    int64           `json:"id"`
	RequisitionNumber     string          `json:"requisition_number"`
	Title                 string          `json:"title"`
	Department            string          `json:"department"`
	Location              string          `json:"location"`
	RequesterID           int64           `json:"requester_id"`
	RequestDate           time.Time       `json:"request_date"`
	TotalEstimatedCost    decimal.Decimal `json:"total_estimated_cost"`
	BusinessJustification string          `json:"business_justification"`
	Status                RequestStatus   `json:"status"`
	CurrentApproverID     *int64          `json:"current_approver_id,omitempty"`
	CurrentApprovalLevel  int             `json:"current_approval_level"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// LineItem represents a single item on a purchase request. RequiredQuantity
// is the net quantity after stock on hand was subtracted at entry time.
type LineItem struct {
	ID                int64           `json:"id"`
	PurchaseRequestID int64           `json:"purchase_request_id"`
	ItemName          string          `json:"item_name"`
	RequiredQuantity  int             `json:"required_quantity"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	RequiredByDate    time.Time       `json:"required_by_date"`
	DeliveryLocation  string          `json:"delivery_location"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	Justification     string          `json:"justification"`
	StockAvailable    int             `json:"stock_available"`
	CreatedAt         time.Time       `json:"created_at"`
}
