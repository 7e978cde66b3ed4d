package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/middleware"
)

// decodeJSON decodes the request body into dst. On failure it writes the
// error response itself and returns false: 413 when the body limit was hit,
// 400 for an empty or malformed body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
	case errors.Is(err, io.EOF):
		badRequest(w, "request body is required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		badRequest(w, "request body is not valid JSON")
	case errors.As(err, &typeErr):
		badRequest(w, fmt.Sprintf("field %q has the wrong type", typeErr.Field))
	default:
		badRequest(w, err.Error())
	}
	return false
}

// pathParam returns the named URL parameter, percent-decoded. chi matches
// against the raw path when one is set, so names with spaces or slashes
// arrive escaped.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(pathParam(r, name))
	if err != nil {
		badRequest(w, fmt.Sprintf("%s must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads ?page= and ?limit=. Missing values fall back to the
// defaults of domain.NewPaginationParams; values that are not integers, and
// pages past domain.MaxPage, are rejected.
func pagination(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	var page, limit *int
	for _, p := range []struct {
		name string
		dst  **int
	}{{"page", &page}, {"limit", &limit}} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, fmt.Sprintf("%s must be an integer", p.name))
			return domain.PaginationParams{}, false
		}
		*p.dst = &n
	}
	if page != nil && *page > domain.MaxPage {
		badRequest(w, fmt.Sprintf("page must not exceed %d", domain.MaxPage))
		return domain.PaginationParams{}, false
	}
	return domain.NewPaginationParams(page, limit), true
}

// queryList reads a comma-separated query parameter, also accepting it repeated
// (?tags=art,food or ?tags=art&tags=food).
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			if t := strings.TrimSpace(part); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// ownerID returns the authenticated user. Routes behind the require middleware
// always have one; the 401 here only guards against a miswired router.
func ownerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	return id, ok
}

// optionalUserID returns the caller's id when the request was authenticated.
func optionalUserID(r *http.Request) *uuid.UUID {
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		return &id
	}
	return nil
}
