package service

import (
	"context"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// NotificationService exposes the notification inbox
type NotificationService interface {
	ListForUser(ctx context.Context, userID int64) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type notificationServiceImpl struct {
	notificationRepo port.NotificationRepository
	logger           Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo port.NotificationRepository, logger Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListForUser returns a user's notifications, newest first
func (s *notificationServiceImpl) ListForUser(ctx context.Context, userID int64) ([]entity.Notification, error) {
	notifications, err := s.notificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list notifications", "error", err, "user_id", userID)
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag, the only mutation notifications allow
func (s *notificationServiceImpl) MarkRead(ctx context.Context, id int64) error {
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		s.logger.Error("Failed to mark notification read", "error", err, "id", id)
		return err
	}
	return nil
}
