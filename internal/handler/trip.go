package handler

import (
	"net/http"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

const tripNotFound = "trip not found"

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var body CreateTripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), owner, body.Name, body.StartDate.Time, body.EndDate.Time)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	params, ok := pagination(w, r)
	if !ok {
		return
	}

	page, err := s.trips.List(r.Context(), owner, params)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(page, params, tripToResponse))
}

// GetTrip handles GET /api/trips/{tripName}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.Get(r.Context(), owner, pathParam(r, "tripName"))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /api/trips/{tripName}. Only the fields present in
// the body change.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var body UpdateTripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	patch := domain.TripPatch{Name: body.Name}
	if body.StartDate != nil {
		patch.StartDate = &body.StartDate.Time
	}
	if body.EndDate != nil {
		patch.EndDate = &body.EndDate.Time
	}

	updated, err := s.trips.Update(r.Context(), owner, pathParam(r, "tripName"), patch)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /api/trips/{tripName}. Stops go with the trip.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), owner, pathParam(r, "tripName")); err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
