package handlers

import (
	"net/http"

	"sportiq/internal/service"
)

// SearchHandler handles search HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search returns merged team, player and module matches for a query
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "Missing query parameter q", "", nil)
		return
	}

	results, err := h.searchService.Search(query)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Search failed", "Error searching", err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}
