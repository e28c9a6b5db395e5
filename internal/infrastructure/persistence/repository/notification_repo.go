package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/procurehub/procurehub/internal/application/port"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// NotificationRepository implements port.NotificationRepository
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (
			user_id, purchase_request_id, title, message, type, is_read
		) VALUES (?, ?, ?, ?, ?, 0)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		notification.UserID,
		nullableID(notification.PurchaseRequestID),
		notification.Title,
		notification.Message,
		string(notification.Type),
	)
	if err != nil {
		r.logger.Error("Failed to create notification", zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	notification.ID = id
	return nil
}

// GetByUserID retrieves a user's notifications, newest first
func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64) ([]entity.Notification, error) {
	query := `
		SELECT id, user_id, purchase_request_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []entity.Notification
	for rows.Next() {
		var n entity.Notification
		var requestID sql.NullInt64
		var typ string
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&requestID,
			&n.Title,
			&n.Message,
			&typ,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if requestID.Valid {
			n.PurchaseRequestID = &requestID.Int64
		}
		n.Type = entity.NotificationType(typ)
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead sets the read flag on a notification
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET is_read = 1 WHERE id = ?`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to mark notification read", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
