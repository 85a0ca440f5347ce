package handler

import (
	"net/http"

	"github.com/msomdec/mercado-social/internal/service"
)

// NotificationHandler serves user inboxes.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// HandleList returns the latest notifications of a user.
// GET /api/notifications/{userId}
// Response: {"notifications": [...], "unreadCount": 2}
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	notifs, err := h.notifications.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list notifications", err)
		return
	}
	unread, err := h.notifications.UnreadCount(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "count unread notifications", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": toNotificationDTOs(notifs),
		"unreadCount":   unread,
	})
}

// HandleMarkAllRead marks every notification of a user as read.
// POST /api/notifications/{userId}/read
func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	updated, err := h.notifications.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "mark notifications read", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Notifications marked as read.",
		"updated": updated,
	})
}
