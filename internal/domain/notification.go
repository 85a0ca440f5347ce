package domain

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	// NotificationFollow is reserved; follow events do not produce notifications.
	NotificationFollow NotificationType = "FOLLOW"
)

// Notification is an inbox entry for UserID caused by FromUserID.
type Notification struct {
	ID         int64
	UserID     int64
	Type       NotificationType
	FromUserID int64
	PostID     *int64
	Read       bool
	CreatedAt  time.Time
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	// ListRecent returns at most limit notifications for the user, newest first.
	ListRecent(ctx context.Context, userID int64, limit int) ([]Notification, error)
	// MarkAllRead flags every unread notification of the user as read and
	// returns how many changed.
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}
