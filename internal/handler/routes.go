package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the API router. requireUser guards the per-user resources;
// optionalUser attaches the caller's identity when a token is sent, which is
// how anonymous searches skip the history.
func (s *Server) Routes(requireUser, optionalUser func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/countries", s.ListCountries)
		r.Get("/countries/{name}", s.GetCountry)
		r.Get("/regions", s.ListRegions)
		r.Get("/regions/{name}", s.GetRegion)
		r.Get("/tags", s.ListTags)

		r.Route("/cities", func(r chi.Router) {
			r.Get("/", s.ListCities)
			r.With(optionalUser).Get("/search", s.SearchCities)
			r.With(optionalUser).Get("/{name}", s.GetCity)
			r.With(optionalUser).Get("/{name}/weather", s.GetCityWeather)
			r.Get("/{name}/pois", s.GetCityPois)
			r.With(optionalUser).Get("/{name}/overview", s.GetCityOverview)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", s.ListTrips)
				r.Post("/", s.CreateTrip)
				r.Route("/{tripName}", func(r chi.Router) {
					r.Get("/", s.GetTrip)
					r.Put("/", s.UpdateTrip)
					r.Delete("/", s.DeleteTrip)
					r.Get("/export", s.ExportTrip)
					r.Post("/stops", s.AddStop)
					r.Put("/stops/{stopName}", s.UpdateStop)
					r.Delete("/stops/{stopName}", s.DeleteStop)
					r.Put("/stops/{stopName}/pois/{poiId}", s.AttachStopPoi)
					r.Delete("/stops/{stopName}/pois/{poiId}", s.DetachStopPoi)
				})
			})

			r.Route("/pois", func(r chi.Router) {
				r.Get("/", s.ListPois)
				r.Post("/", s.CreatePoi)
				r.Delete("/", s.DeleteAllPois)
				r.Post("/external", s.SaveExternalPoi)
				r.Get("/{poiId}", s.GetPoi)
				r.Delete("/{poiId}", s.DeletePoi)
			})

			r.Get("/users/me", s.GetMe)
			r.Put("/users/me/profile", s.UpdateProfile)

			r.Get("/search-history", s.ListSearchHistory)
			r.Delete("/search-history", s.ClearSearchHistory)
		})
	})

	return r
}
