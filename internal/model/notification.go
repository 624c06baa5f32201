package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotificationTypeOrder  NotificationType = "order"
	NotificationTypePromo  NotificationType = "promo"
	NotificationTypeSystem NotificationType = "system"
)

// Notification is a message addressed to a single user.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    string           `json:"userId" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// NotificationListResponse is a user's notifications plus the unread count.
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread"`
}
