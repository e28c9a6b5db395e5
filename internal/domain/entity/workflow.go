package entity

// ApprovalWorkflowEntry is one step of the configured approval chain for a
// (department, location) pair. Level 1 acts first.
type ApprovalWorkflowEntry struct {
	ID            int64  `json:"id"`
	Department    string `json:"department"`
	Location      string `json:"location"`
	ApprovalLevel int    `json:"approval_level"`
	ApproverID    int64  `json:"approver_id"`
}
