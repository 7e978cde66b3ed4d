package handler

import "net/http"

// ListCountries handles GET /api/countries.
func (s *Server) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.geography.ListCountries(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "country not found")
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[Country]{Data: mapAll(countries, countryToResponse)})
}

// GetCountry handles GET /api/countries/{name}.
func (s *Server) GetCountry(w http.ResponseWriter, r *http.Request) {
	country, err := s.geography.GetCountry(r.Context(), pathParam(r, "name"))
	if err != nil {
		s.writeServiceError(w, r, err, "country not found")
		return
	}
	writeJSON(w, http.StatusOK, countryToResponse(country))
}

// ListRegions handles GET /api/regions?country=.
func (s *Server) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := s.geography.ListRegions(r.Context(), r.URL.Query().Get("country"))
	if err != nil {
		s.writeServiceError(w, r, err, "country not found")
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[Region]{Data: mapAll(regions, regionToResponse)})
}

// GetRegion handles GET /api/regions/{name}?country=.
// A region name shared by several countries needs ?country= to pick one.
func (s *Server) GetRegion(w http.ResponseWriter, r *http.Request) {
	region, err := s.geography.GetRegion(r.Context(), pathParam(r, "name"), r.URL.Query().Get("country"))
	if err != nil {
		s.writeServiceError(w, r, err, "region not found")
		return
	}
	writeJSON(w, http.StatusOK, regionToResponse(region))
}

// ListTags handles GET /api/tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.geography.ListTags(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[Tag]{Data: mapAll(tags, tagToResponse)})
}
