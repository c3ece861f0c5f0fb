package entity

import "time"

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient toast message. Kind only affects presentation.
type Notification struct {
	Kind      NotificationKind `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}
