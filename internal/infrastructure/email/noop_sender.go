package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
)

// NoopSender satisfies port.EmailSender when outbound email is disabled.
// Sends are logged at debug level and dropped.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a sender that drops all mail
func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) SendApprovalRequest(_ context.Context, recipients []string, requisitionNumber, _, _, _ string) error {
	s.logger.Debug("Email disabled, dropping approval email",
		zap.String("requisition_number", requisitionNumber),
		zap.Int("recipients", len(recipients)))
	return nil
}

// Verify interface compliance
var _ port.EmailSender = (*NoopSender)(nil)
