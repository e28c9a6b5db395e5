package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
)

// Config holds SMTP configuration
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender implements port.EmailSender over plain SMTP
type SMTPSender struct {
	cfg    Config
	logger *zap.Logger
}

// NewSMTPSender creates a new SMTP email sender
func NewSMTPSender(cfg Config, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendApprovalRequest emails the configured approvers about a newly submitted
// purchase request
func (s *SMTPSender) SendApprovalRequest(ctx context.Context, recipients []string, requisitionNumber, department, location, link string) error {
	if len(recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("Purchase Request %s Awaiting Approval", requisitionNumber)
	body := fmt.Sprintf(
		"A new purchase request %s from %s / %s is awaiting approval.\r\n\r\nReview it here: %s\r\n",
		requisitionNumber, department, location, link,
	)

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, recipients, []byte(msg)); err != nil {
		s.logger.Error("Failed to send approval email",
			zap.String("requisition_number", requisitionNumber),
			zap.Int("recipients", len(recipients)),
			zap.Error(err))
		return fmt.Errorf("failed to send approval email: %w", err)
	}

	s.logger.Info("Approval email sent",
		zap.String("requisition_number", requisitionNumber),
		zap.Int("recipients", len(recipients)))
	return nil
}

// Verify interface compliance
var _ port.EmailSender = (*SMTPSender)(nil)
