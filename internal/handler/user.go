package handler

import (
	"net/http"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

const profileNotFound = "profile not found"

// GetMe handles GET /api/users/me. A caller who never saved a profile gets
// the defaults.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerID(w, r)
	if !ok {
		return
	}

	p, err := s.users.Me(r.Context(), user)
	if err != nil {
		s.writeServiceError(w, r, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(p))
}

// UpdateProfile handles PUT /api/users/me/profile. Omitted fields keep their
// current value; usernames and emails are unique ignoring case.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerID(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := s.users.UpdateProfile(r.Context(), user, domain.ProfilePatch{
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PreferredUnits: req.PreferredUnits,
	})
	if err != nil {
		s.writeServiceError(w, r, err, profileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(p))
}
