package handler

import (
	"net/http"

	"github.com/msomdec/mercado-social/internal/service"
)

// PostHandler handles posts, likes, and comments.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleCreate publishes a post, optionally with an image in the multipart
// field "image".
// POST /api/posts
// Response: 201 {"message","post"}
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AuthorID   flexInt `json:"authorId"`
		UserID     flexInt `json:"userId"`
		Content    string  `json:"content"`
		Visibility string  `json:"visibility"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	image, err := readUpload(r, "image")
	if err != nil {
		writeBodyError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), service.CreatePostInput{
		AuthorID:   actorFrom(r, int64(req.AuthorID), int64(req.UserID)),
		Content:    req.Content,
		Visibility: req.Visibility,
	}, image)
	if err != nil {
		writeServiceError(w, "create post", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Post created.",
		"post":    toPostDTO(*post),
	})
}

// HandleFeed lists all posts, most liked first.
// GET /api/feed
func (h *PostHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.posts.Feed(r.Context())
	if err != nil {
		writeServiceError(w, "list feed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": toPostViewDTOs(feed)})
}

// HandleToggleLike likes or unlikes a post.
// POST /api/posts/{id}/like
// Request:  {"userId": 1}
// Response: {"liked": true, "likesCount": 3}
func (h *PostHandler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post id.")
		return
	}

	var req struct {
		UserID flexInt `json:"userId"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	liked, count, err := h.posts.ToggleLike(r.Context(), postID, actorFrom(r, int64(req.UserID)))
	if err != nil {
		writeServiceError(w, "toggle like", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"liked":      liked,
		"likesCount": count,
	})
}

// HandleAddComment writes a comment under a post.
// POST /api/posts/{id}/comments
// Request:  {"authorId": 1, "content": "..."}
// Response: 201 {"message","comment","commentsCount"}
func (h *PostHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post id.")
		return
	}

	var req struct {
		AuthorID flexInt `json:"authorId"`
		UserID   flexInt `json:"userId"`
		Content  string  `json:"content"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	comment, count, err := h.posts.AddComment(r.Context(), service.AddCommentInput{
		PostID:   postID,
		AuthorID: actorFrom(r, int64(req.AuthorID), int64(req.UserID)),
		Content:  req.Content,
	})
	if err != nil {
		writeServiceError(w, "add comment", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":       "Comment created.",
		"comment":       toCommentDTO(*comment),
		"commentsCount": count,
	})
}

// HandleListComments lists the comments of a post, oldest first.
// GET /api/posts/{id}/comments
func (h *PostHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post id.")
		return
	}

	comments, err := h.posts.ListComments(r.Context(), postID)
	if err != nil {
		writeServiceError(w, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": toCommentDTOs(comments)})
}
