package port

import "context"

// EmailSender delivers outbound email. Delivery is best-effort: callers fire
// it after the transaction commits and only log failures.
type EmailSender interface {
	SendApprovalRequest(ctx context.Context, recipients []string, requisitionNumber, department, location, link string) error
}
