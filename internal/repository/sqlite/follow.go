package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// followRepo implements domain.FollowRepository using SQLite.
type followRepo struct {
	db *sql.DB
}

func (r *followRepo) Follow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return r.change(ctx, followerID, followeeID,
		`INSERT OR IGNORE INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)`,
		followerID, followeeID, time.Now().UTC())
}

func (r *followRepo) Unfollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return r.change(ctx, followerID, followeeID,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID)
}

// change runs the relation write and recomputes both counters from the
// relation in the same transaction. Counters are refreshed even when the
// write was a no-op so drifted values heal.
func (r *followRepo) change(ctx context.Context, followerID, followeeID int64, query string, args ...any) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("write follow: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET following_count = (SELECT COUNT(*) FROM follows WHERE follower_id = ?) WHERE id = ?`,
		followerID, followerID); err != nil {
		return false, fmt.Errorf("refresh following count: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET followers_count = (SELECT COUNT(*) FROM follows WHERE followee_id = ?) WHERE id = ?`,
		followeeID, followeeID); err != nil {
		return false, fmt.Errorf("refresh followers count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return n > 0, nil
}

func (r *followRepo) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?)`,
		followerID, followeeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query follow: %w", err)
	}
	return exists, nil
}

func (r *followRepo) ListFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.listIDs(ctx,
		`SELECT follower_id FROM follows WHERE followee_id = ? ORDER BY created_at, follower_id`, userID)
}

func (r *followRepo) ListFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.listIDs(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY created_at, followee_id`, userID)
}

func (r *followRepo) listIDs(ctx context.Context, query string, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan follow: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
