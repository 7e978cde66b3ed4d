package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ExportTrip handles GET /api/trips/{tripName}/export.
// The itinerary is returned as a CSV attachment named trip_<name>.csv, one
// row per stop.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	body, filename, err := s.trips.Export(r.Context(), owner, pathParam(r, "tripName"))
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// contentDisposition builds an attachment header with a quoted-string file name.
func contentDisposition(filename string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "").Replace(filename)
	return fmt.Sprintf(`attachment; filename="%s"`, escaped)
}
