package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/mercado-social/internal/domain"
)

// notificationRepo implements domain.NotificationRepository using SQLite.
type notificationRepo struct {
	db *sql.DB
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertNotification(ctx context.Context, ex execer, n *domain.Notification, now time.Time) error {
	result, err := ex.ExecContext(ctx,
		`INSERT INTO notifications (user_id, type, from_user_id, post_id, read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, n.Type, n.FromUserID, n.PostID, n.Read, now,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get notification id: %w", err)
	}
	n.ID = id
	n.CreatedAt = now
	return nil
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return insertNotification(ctx, r.db, n, time.Now().UTC())
}

func (r *notificationRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, type, from_user_id, post_id, read, created_at FROM notifications
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifs := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		var postID sql.NullInt64
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.FromUserID, &postID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if postID.Valid {
			n.PostID = &postID.Int64
		}
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
