package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/msomdec/mercado-social/internal/domain"
)

// NotificationListLimit caps how many notifications are returned per listing.
const NotificationListLimit = 30

// NotificationView is a notification with the profile of the user who
// triggered it. FromUser is nil when that user no longer resolves.
type NotificationView struct {
	domain.Notification
	FromUser *domain.PublicProfile
}

// NotificationService reads and acknowledges user inboxes.
type NotificationService struct {
	notifications domain.NotificationRepository
	users         domain.UserRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifications domain.NotificationRepository, users domain.UserRepository) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

// List returns the newest notifications of userID, at most NotificationListLimit.
func (s *NotificationService) List(ctx context.Context, userID int64) ([]NotificationView, error) {
	notifs, err := s.notifications.ListRecent(ctx, userID, NotificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	ids := make([]int64, 0, len(notifs))
	for _, n := range notifs {
		ids = append(ids, n.FromUserID)
	}
	profiles, err := s.users.GetProfiles(ctx, distinctIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}

	views := make([]NotificationView, 0, len(notifs))
	for _, n := range notifs {
		v := NotificationView{Notification: n}
		if p, ok := profiles[n.FromUserID]; ok {
			v.FromUser = &p
		}
		views = append(views, v)
	}
	return views, nil
}

// UnreadCount returns how many notifications of userID are still unread.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// MarkAllRead flags every notification of userID as read and returns how many
// changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

// notificationFor builds the notification owed to the author of post when
// actorID engages with it. Authors are never notified about themselves.
func notificationFor(post *domain.Post, actorID int64, typ domain.NotificationType) *domain.Notification {
	if post.AuthorID == actorID {
		return nil
	}
	postID := post.ID
	return &domain.Notification{
		UserID:     post.AuthorID,
		Type:       typ,
		FromUserID: actorID,
		PostID:     &postID,
	}
}

// distinctIDs returns the ids sorted with duplicates removed.
func distinctIDs(ids []int64) []int64 {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	return slices.Compact(ids)
}
