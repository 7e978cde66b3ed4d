package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// constraintMessages turns the names of unique indexes, which the repos attach
// to conflict errors, into messages fit for a client.
var constraintMessages = map[string]string{
	"trips_owner_name_key":       "A trip with this name already exists",
	"stops_trip_name_key":        "A stop for this city on this date already exists in this trip",
	"pois_owner_name_key":        "A POI with this name already exists",
	"pois_owner_external_key":    "This place is already saved",
	"user_profiles_username_key": "Username already exists",
	"user_profiles_email_key":    "Email already exists",
}

var sentinels = []error{
	domain.ErrValidation,
	domain.ErrAmbiguousCity,
	domain.ErrNotFound,
	domain.ErrConflict,
	domain.ErrExternalUnavailable,
}

// detail extracts the human-readable part from a wrapped sentinel error: the
// text after the last sentinel prefix.
// e.g. "service.TripService.Create: validation error: trip name is required" → "trip name is required"
// A bare token such as a constraint name is mapped through constraintMessages,
// or dropped so that fallback is used.
func detail(err error, fallback string) string {
	msg := err.Error()
	cut := -1
	for _, s := range sentinels {
		prefix := s.Error() + ": "
		if i := strings.LastIndex(msg, prefix); i >= 0 && i+len(prefix) > cut {
			cut = i + len(prefix)
		}
	}
	if cut < 0 {
		return fallback
	}
	d := strings.TrimSpace(msg[cut:])
	if m, ok := constraintMessages[d]; ok {
		return m
	}
	if d == "" || !strings.Contains(d, " ") {
		return fallback
	}
	return d
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// badRequest answers a request rejected before reaching the service layer
// (e.g. missing or malformed body, unparsable path or query parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "validation_error", message)
}

// writeServiceError maps a service error onto the HTTP error taxonomy.
// notFound is the message used when the error carries no detail of its own,
// e.g. "trip not found".
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", detail(err, "invalid request"))

	case errors.Is(err, domain.ErrNotFound):
		msg := notFound
		if d := detail(err, ""); d != "" {
			msg = d + " not found"
		}
		s.logger.WarnContext(r.Context(), "resource not found",
			slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		writeError(w, http.StatusNotFound, "not_found", msg)

	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", detail(err, "resource already exists"))

	case errors.Is(err, domain.ErrExternalUnavailable):
		s.logger.WarnContext(r.Context(), "external service unavailable",
			slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "external_service_unavailable",
			"An external service is currently unavailable. Please try again later.")

	default:
		s.logger.ErrorContext(r.Context(), "unexpected error",
			slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
