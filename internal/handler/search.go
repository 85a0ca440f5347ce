package handler

import (
	"net/http"

	"github.com/msomdec/mercado-social/internal/service"
)

// SearchHandler serves the combined user and store search.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// HandleSearch matches q against user names, usernames and store names.
// GET /api/search?q=...
// Response: {"users": [{"id","name","username"}], "stores": [{"id","name"}]}
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := h.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, "search", err)
		return
	}

	users := make([]SearchUserDTO, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, SearchUserDTO{ID: u.ID, Name: u.Name, Username: u.Username})
	}
	stores := make([]SearchStoreDTO, 0, len(result.Stores))
	for _, s := range result.Stores {
		stores = append(stores, SearchStoreDTO{ID: s.ID, Name: s.Name})
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users, "stores": stores})
}
