package handler

import (
	"net/http"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

const poiNotFound = "POI not found"

// CreatePoi handles POST /api/pois for a hand-entered point of interest.
func (s *Server) CreatePoi(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var body CreatePoiRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	poi, err := s.pois.Create(r.Context(), owner, domain.Poi{
		Name:        body.Name,
		Description: body.Description,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
	})
	if err != nil {
		s.writeServiceError(w, r, err, poiNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, poiToResponse(poi))
}

// SaveExternalPoi handles POST /api/pois/external. The body is a POI as
// returned by GET /api/cities/{name}/pois. Saving the same place again
// updates the stored copy.
func (s *Server) SaveExternalPoi(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var body domain.ExternalPoi
	if !decodeJSON(w, r, &body) {
		return
	}

	poi, err := s.pois.SaveExternal(r.Context(), owner, body)
	if err != nil {
		s.writeServiceError(w, r, err, poiNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, poiToResponse(poi))
}

// ListPois handles GET /api/pois, newest first.
func (s *Server) ListPois(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	pois, err := s.pois.List(r.Context(), owner)
	if err != nil {
		s.writeServiceError(w, r, err, poiNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[Poi]{Data: mapAll(pois, poiToResponse)})
}

// GetPoi handles GET /api/pois/{poiId}.
func (s *Server) GetPoi(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "poiId")
	if !ok {
		return
	}

	poi, err := s.pois.Get(r.Context(), owner, id)
	if err != nil {
		s.writeServiceError(w, r, err, poiNotFound)
		return
	}
	writeJSON(w, http.StatusOK, poiToResponse(poi))
}

// DeletePoi handles DELETE /api/pois/{poiId}.
func (s *Server) DeletePoi(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "poiId")
	if !ok {
		return
	}

	if err := s.pois.Delete(r.Context(), owner, id); err != nil {
		s.writeServiceError(w, r, err, poiNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllPois handles DELETE /api/pois and reports how many were removed.
func (s *Server) DeleteAllPois(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	n, err := s.pois.DeleteAll(r.Context(), owner)
	if err != nil {
		s.writeServiceError(w, r, err, poiNotFound)
		return
	}
	writeJSON(w, http.StatusOK, DeletedResponse{Deleted: n})
}
