package handler

import "net/http"

const cityNotFound = "city not found"

// ListCities handles GET /api/cities.
// ?region= narrows to one region name, ?tags= to cities carrying any of the tags.
func (s *Server) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.cities.List(r.Context(), r.URL.Query().Get("region"), queryList(r, "tags"))
	if err != nil {
		s.writeServiceError(w, r, err, cityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[City]{Data: mapAll(cities, cityToResponse)})
}

// SearchCities handles GET /api/cities/search?query=.
// Local cities are searched first and the geocoding provider only when none
// match. The search is recorded for authenticated callers.
func (s *Server) SearchCities(w http.ResponseWriter, r *http.Request) {
	results, err := s.search.Search(r.Context(), r.URL.Query().Get("query"), optionalUserID(r))
	if err != nil {
		s.writeServiceError(w, r, err, cityNotFound)
		return
	}
	if results == nil {
		results = []CitySearchResult{}
	}
	writeJSON(w, http.StatusOK, ListResponse[CitySearchResult]{Data: results})
}

// GetCity handles GET /api/cities/{name}?region=.
func (s *Server) GetCity(w http.ResponseWriter, r *http.Request) {
	city, err := s.cities.GetByName(r.Context(), pathParam(r, "name"), r.URL.Query().Get("region"), optionalUserID(r))
	if err != nil {
		s.writeServiceError(w, r, err, cityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cityToResponse(city))
}

// GetCityWeather handles GET /api/cities/{name}/weather?region=.
// Authenticated callers get readings in their preferred units.
func (s *Server) GetCityWeather(w http.ResponseWriter, r *http.Request) {
	weather, err := s.cities.Weather(r.Context(), pathParam(r, "name"), r.URL.Query().Get("region"), optionalUserID(r))
	if err != nil {
		s.writeServiceError(w, r, err, cityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, weather)
}

// GetCityPois handles GET /api/cities/{name}/pois?region=.
// The list is never empty: provider failures fall back to synthetic POIs.
func (s *Server) GetCityPois(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	lookup, err := s.cities.Pois(r.Context(), name, r.URL.Query().Get("region"))
	if err != nil {
		s.writeServiceError(w, r, err, cityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, poiListToResponse(name, lookup))
}

// GetCityOverview handles GET /api/cities/{name}/overview?region=.
// weather is null when the weather provider could not be reached.
func (s *Server) GetCityOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.cities.Overview(r.Context(), pathParam(r, "name"), r.URL.Query().Get("region"), optionalUserID(r))
	if err != nil {
		s.writeServiceError(w, r, err, cityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, CityOverview{
		City:    cityToResponse(ov.City),
		Weather: ov.Weather,
		Pois:    poiListToResponse(ov.City.Name, ov.Pois),
	})
}
