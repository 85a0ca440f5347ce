package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/mercado-social/internal/domain"
)

const postColumns = `id, author_id, content, media, visibility, likes_count, comments_count, created_at`

// postRepo implements domain.PostRepository using SQLite.
type postRepo struct {
	db *sql.DB
}

func scanPost(row rowScanner) (*domain.Post, error) {
	p := &domain.Post{}
	var media string
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &media, &p.Visibility,
		&p.LikesCount, &p.CommentsCount, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(media), &p.Media); err != nil {
		return nil, fmt.Errorf("decode media of post %d: %w", p.ID, err)
	}
	return p, nil
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	if post.Media == nil {
		post.Media = []string{}
	}
	media, err := json.Marshal(post.Media)
	if err != nil {
		return fmt.Errorf("encode media: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO posts (author_id, content, media, visibility, created_at) VALUES (?, ?, ?, ?, ?)`,
		post.AuthorID, post.Content, string(media), post.Visibility, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert post: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get post id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET post_count = (SELECT COUNT(*) FROM posts WHERE author_id = ?) WHERE id = ?`,
		post.AuthorID, post.AuthorID); err != nil {
		return fmt.Errorf("refresh post count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (r *postRepo) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Post, error) {
	return r.list(ctx,
		`SELECT `+postColumns+` FROM posts WHERE author_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		authorID, limit)
}

func (r *postRepo) ListFeed(ctx context.Context) ([]domain.Post, error) {
	return r.list(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY likes_count DESC, created_at DESC, id DESC`)
}

func (r *postRepo) list(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *postRepo) ToggleLike(ctx context.Context, postID, userID int64, notif *domain.Notification) (bool, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("delete like: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("rows affected: %w", err)
	}

	liked := removed == 0
	if liked {
		now := time.Now().UTC()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO likes (post_id, user_id, created_at) VALUES (?, ?, ?)`, postID, userID, now); err != nil {
			if isForeignKeyError(err) {
				return false, 0, domain.ErrNotFound
			}
			return false, 0, fmt.Errorf("insert like: %w", err)
		}
		if notif != nil {
			if err := insertNotification(ctx, tx, notif, now); err != nil {
				return false, 0, err
			}
		}
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		`UPDATE posts SET likes_count = (SELECT COUNT(*) FROM likes WHERE post_id = ?) WHERE id = ?
		 RETURNING likes_count`, postID, postID,
	).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, 0, domain.ErrNotFound
		}
		return false, 0, fmt.Errorf("refresh likes count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit: %w", err)
	}
	return liked, count, nil
}

func (r *postRepo) AddComment(ctx context.Context, comment *domain.Comment, notif *domain.Notification) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO comments (post_id, author_id, content, created_at) VALUES (?, ?, ?, ?)`,
		comment.PostID, comment.AuthorID, comment.Content, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get comment id: %w", err)
	}

	if notif != nil {
		if err := insertNotification(ctx, tx, notif, now); err != nil {
			return 0, err
		}
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		`UPDATE posts SET comments_count = (SELECT COUNT(*) FROM comments WHERE post_id = ?) WHERE id = ?
		 RETURNING comments_count`, comment.PostID, comment.PostID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("refresh comments count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	comment.ID = id
	comment.CreatedAt = now
	return count, nil
}

func (r *postRepo) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, author_id, content, created_at FROM comments
		 WHERE post_id = ? ORDER BY created_at, id`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
