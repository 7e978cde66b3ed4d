package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but belongs to a different user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. end date before start date, stop outside the trip range).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrAmbiguousCity marks a city lookup that matched more than one city and
// needs a region to disambiguate. It is always returned alongside ErrValidation.
var ErrAmbiguousCity = errors.New("ambiguous city")

// ErrConflict is returned when a write would break a uniqueness rule:
// a stop name already used in the trip, a duplicate trip or POI name.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrExternalUnavailable is returned when a weather or geocoding provider
// times out, is unreachable, or answers with a non-2xx or empty response.
// Handlers should map this to HTTP 503.
var ErrExternalUnavailable = errors.New("external service unavailable")
