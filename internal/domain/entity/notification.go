package entity

import "time"

// NotificationType is the severity class of a user notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is a user-facing notification created as a side effect of a
// workflow transition. Only the read flag is ever mutated.
type Notification struct {
	ID                int64            `json:"id"`
	UserID            int64            `json:"user_id"`
	PurchaseRequestID *int64           `json:"purchase_request_id,omitempty"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	Type              NotificationType `json:"type"`
	IsRead            bool             `json:"is_read"`
	CreatedAt         time.Time        `json:"created_at"`
}
