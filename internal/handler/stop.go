package handler

import (
	"net/http"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

const stopNotFound = "stop not found"

// AddStop handles POST /api/trips/{tripName}/stops.
// The stop name is derived from the city and the date, so the body names the
// city (and its region if the name is ambiguous) rather than the stop.
func (s *Server) AddStop(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var body AddStopRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	stop, err := s.stops.Add(r.Context(), owner, pathParam(r, "tripName"), domain.NewStop{
		CityID:     body.CityID,
		CityName:   body.City,
		RegionName: body.Region,
		StopDate:   body.StopDate.Time,
		Notes:      body.Notes,
	})
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, stopToResponse(stop))
}

// UpdateStop handles PUT /api/trips/{tripName}/stops/{stopName}.
// Moving a stop to another date renames it.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var body UpdateStopRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	patch := domain.StopPatch{Notes: body.Notes}
	if body.StopDate != nil {
		patch.StopDate = &body.StopDate.Time
	}

	stop, err := s.stops.Update(r.Context(), owner, pathParam(r, "tripName"), pathParam(r, "stopName"), patch)
	if err != nil {
		s.writeServiceError(w, r, err, stopNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stopToResponse(stop))
}

// DeleteStop handles DELETE /api/trips/{tripName}/stops/{stopName}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := s.stops.Delete(r.Context(), owner, pathParam(r, "tripName"), pathParam(r, "stopName")); err != nil {
		s.writeServiceError(w, r, err, stopNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachStopPoi handles PUT /api/trips/{tripName}/stops/{stopName}/pois/{poiId}.
// Attaching twice is a no-op.
func (s *Server) AttachStopPoi(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	poiID, ok := pathUUID(w, r, "poiId")
	if !ok {
		return
	}

	err := s.stops.AttachPoi(r.Context(), owner, pathParam(r, "tripName"), pathParam(r, "stopName"), poiID)
	if err != nil {
		s.writeServiceError(w, r, err, "stop or POI not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DetachStopPoi handles DELETE /api/trips/{tripName}/stops/{stopName}/pois/{poiId}.
func (s *Server) DetachStopPoi(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	poiID, ok := pathUUID(w, r, "poiId")
	if !ok {
		return
	}

	err := s.stops.DetachPoi(r.Context(), owner, pathParam(r, "tripName"), pathParam(r, "stopName"), poiID)
	if err != nil {
		s.writeServiceError(w, r, err, "POI is not attached to this stop")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
