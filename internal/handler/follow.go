package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/mercado-social/internal/service"
)

// FollowHandler handles the follow graph endpoints. The acting user is the
// authenticated user, else "myId" from the body, else "myId" from the query.
type FollowHandler struct {
	follows *service.FollowService
}

// NewFollowHandler creates a new FollowHandler.
func NewFollowHandler(follows *service.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// HandleFollow makes the acting user follow {id}.
// POST /api/follow/{id}
func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	targetID, actorID, ok := h.parse(w, r)
	if !ok {
		return
	}

	changed, err := h.follows.Follow(r.Context(), actorID, targetID)
	if err != nil {
		writeServiceError(w, "follow user", err)
		return
	}

	message := "You now follow this user."
	if !changed {
		message = "You already follow this user."
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message, "following": true})
}

// HandleUnfollow removes the follow of the acting user on {id}.
// DELETE /api/follow/{id}
func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	targetID, actorID, ok := h.parse(w, r)
	if !ok {
		return
	}

	if _, err := h.follows.Unfollow(r.Context(), actorID, targetID); err != nil {
		writeServiceError(w, "unfollow user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "You no longer follow this user.", "following": false})
}

// HandleStatus reports whether the acting user follows {id}.
// GET /api/follow/status/{id}
// Response: {"isFollowing": true}
func (h *FollowHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	following, err := h.follows.IsFollowing(r.Context(), actorFrom(r, queryID(r, "myId")), targetID)
	if err != nil {
		writeServiceError(w, "get follow status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"isFollowing": following})
}

// HandleFollowers lists who follows {id}.
// GET /api/users/{id}/followers
func (h *FollowHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	users, err := h.follows.Followers(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list followers", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": toProfileDTOs(users)})
}

// HandleFollowing lists whom {id} follows.
// GET /api/users/{id}/following
func (h *FollowHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	users, err := h.follows.Following(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list following", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": toProfileDTOs(users)})
}

func (h *FollowHandler) parse(w http.ResponseWriter, r *http.Request) (targetID, actorID int64, ok bool) {
	targetID, ok = pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return 0, 0, false
	}

	var req struct {
		MyID flexInt `json:"myId"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return 0, 0, false
	}
	return targetID, actorFrom(r, int64(req.MyID), queryID(r, "myId")), true
}

// queryID parses an optional id query parameter. Absent or malformed values
// yield zero.
func queryID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
