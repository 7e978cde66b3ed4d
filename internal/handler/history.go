package handler

import "net/http"

// ListSearchHistory handles GET /api/search-history, newest first.
func (s *Server) ListSearchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerID(w, r)
	if !ok {
		return
	}
	params, ok := pagination(w, r)
	if !ok {
		return
	}

	page, err := s.history.List(r.Context(), user, params)
	if err != nil {
		s.writeServiceError(w, r, err, "search history not found")
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(page, params, historyToResponse))
}

// ClearSearchHistory handles DELETE /api/search-history.
func (s *Server) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerID(w, r)
	if !ok {
		return
	}

	n, err := s.history.Clear(r.Context(), user)
	if err != nil {
		s.writeServiceError(w, r, err, "search history not found")
		return
	}
	writeJSON(w, http.StatusOK, DeletedResponse{Deleted: n})
}
