package service

import (
	"context"
	"fmt"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/validation"
)

// PostView is a post together with its author's public profile.
type PostView struct {
	domain.Post
	Author *domain.PublicProfile
}

// CommentView is a comment together with its author's public profile.
type CommentView struct {
	domain.Comment
	Author *domain.PublicProfile
}

// CreatePostInput is the content of a new post.
type CreatePostInput struct {
	AuthorID   int64  `json:"userId" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Visibility string `json:"visibility"`
}

// AddCommentInput is a comment written under PostID.
type AddCommentInput struct {
	PostID   int64  `json:"postId" validate:"required"`
	AuthorID int64  `json:"userId" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// PostService handles posts, likes, and comments. Likes and comments fan out
// a notification to the post author.
type PostService struct {
	posts    domain.PostRepository
	users    domain.UserRepository
	media    *MediaService
	validate *validation.Validator
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository, users domain.UserRepository, media *MediaService, validate *validation.Validator) *PostService {
	return &PostService{posts: posts, users: users, media: media, validate: validate}
}

// Create publishes a post with an optional image attached.
func (s *PostService) Create(ctx context.Context, in CreatePostInput, image *Upload) (*domain.Post, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, in.AuthorID); err != nil {
		return nil, fmt.Errorf("user %d: %w", in.AuthorID, err)
	}

	post := &domain.Post{
		AuthorID:   in.AuthorID,
		Content:    in.Content,
		Media:      []string{},
		Visibility: in.Visibility,
	}
	if post.Visibility == "" {
		post.Visibility = domain.VisibilityPublic
	}

	if image != nil {
		path, err := s.media.Save(ctx, domain.MediaPost, image)
		if err != nil {
			return nil, err
		}
		post.Media = append(post.Media, path)
	}

	if err := s.posts.Create(ctx, post); err != nil {
		for _, path := range post.Media {
			s.media.Discard(ctx, path)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Feed returns all posts, most liked first, with their authors.
func (s *PostService) Feed(ctx context.Context) ([]PostView, error) {
	posts, err := s.posts.ListFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	profiles, err := s.users.GetProfiles(ctx, distinctIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		v := PostView{Post: p}
		if author, ok := profiles[p.AuthorID]; ok {
			v.Author = &author
		}
		views = append(views, v)
	}
	return views, nil
}

// ToggleLike likes the post for userID, or removes the like if one exists.
// It returns the new like state and the post's like count.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID int64) (liked bool, likesCount int, err error) {
	if userID == 0 {
		return false, 0, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return false, 0, fmt.Errorf("post %d: %w", postID, err)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return false, 0, fmt.Errorf("user %d: %w", userID, err)
	}

	liked, likesCount, err = s.posts.ToggleLike(ctx, postID, userID, notificationFor(post, userID, domain.NotificationLike))
	if err != nil {
		return false, 0, fmt.Errorf("toggle like: %w", err)
	}
	return liked, likesCount, nil
}

// AddComment stores a comment and returns it with the post's comment count.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) (*CommentView, int, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, 0, err
	}
	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, 0, fmt.Errorf("post %d: %w", in.PostID, err)
	}
	author, err := s.users.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, 0, fmt.Errorf("user %d: %w", in.AuthorID, err)
	}

	comment := &domain.Comment{PostID: in.PostID, AuthorID: in.AuthorID, Content: in.Content}
	count, err := s.posts.AddComment(ctx, comment, notificationFor(post, in.AuthorID, domain.NotificationComment))
	if err != nil {
		return nil, 0, fmt.Errorf("add comment: %w", err)
	}

	return &CommentView{
		Comment: *comment,
		Author: &domain.PublicProfile{
			ID:           author.ID,
			Username:     author.Username,
			Name:         author.Name,
			ProfilePhoto: author.ProfilePhoto,
		},
	}, count, nil
}

// ListComments returns the comments of a post, oldest first. Unknown posts
// have no comments.
func (s *PostService) ListComments(ctx context.Context, postID int64) ([]CommentView, error) {
	comments, err := s.posts.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	profiles, err := s.users.GetProfiles(ctx, distinctIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		v := CommentView{Comment: c}
		if author, ok := profiles[c.AuthorID]; ok {
			v.Author = &author
		}
		views = append(views, v)
	}
	return views, nil
}
