package handler

import (
	"net/http"

	"github.com/msomdec/mercado-social/internal/service"
)

// ProfileHandler serves user profiles.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// HandleGet returns a profile page: the user, their store if any, a few
// products and the latest posts.
// GET /api/profile/{id}
// Response: {"user","store","products","posts"}
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "get profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":     toUserDTO(profile.User),
		"store":    toStoreDTO(profile.Store),
		"products": toProductDTOs(profile.Products),
		"posts":    toPostDTOs(profile.Posts),
	})
}

// HandleGetUser returns a single user.
// GET /api/user/{id}
func (h *ProfileHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	user, err := h.profiles.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleUpdate edits a profile. Only the supplied fields change; a new photo
// comes in the multipart field "profilePhoto".
// POST /api/profile/update
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   flexInt `json:"userId"`
		Name     *string `json:"name"`
		Username *string `json:"username"`
		Bio      *string `json:"bio"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	photo, err := readUpload(r, "profilePhoto")
	if err != nil {
		writeBodyError(w, err)
		return
	}

	user, err := h.profiles.Update(r.Context(), service.UpdateProfileInput{
		UserID:   actorFrom(r, int64(req.UserID)),
		Name:     req.Name,
		Username: req.Username,
		Bio:      req.Bio,
	}, photo)
	if err != nil {
		writeServiceError(w, "update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated.",
		"user":    toUserDTO(user),
	})
}
