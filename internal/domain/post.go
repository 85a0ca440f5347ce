package domain

import (
	"context"
	"time"
)

const VisibilityPublic = "PUBLIC"

// Post is a piece of content in the feed.
type Post struct {
	ID            int64
	AuthorID      int64
	Content       string
	Media         []string
	Visibility    string
	LikesCount    int
	CommentsCount int
	CreatedAt     time.Time
}

// Comment is a reply written under a post.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time
}

// PostRepository defines persistence operations for posts and their engagement.
//
// The engagement writes take the notification to fan out to the post author,
// or nil when none is due, and commit it together with the counter change.
type PostRepository interface {
	// Create inserts the post and refreshes the author's post counter.
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]Post, error)
	// ListFeed returns every post, most liked first, newest first among equals.
	ListFeed(ctx context.Context) ([]Post, error)

	// ToggleLike removes the like of userID on postID if present, otherwise adds
	// it and stores notif. It returns the resulting like state and counter.
	ToggleLike(ctx context.Context, postID, userID int64, notif *Notification) (liked bool, likesCount int, err error)
	// AddComment stores the comment and notif and returns the new comment counter.
	AddComment(ctx context.Context, comment *Comment, notif *Notification) (int, error)
	// ListComments returns the comments of a post, oldest first.
	ListComments(ctx context.Context, postID int64) ([]Comment, error)
}
