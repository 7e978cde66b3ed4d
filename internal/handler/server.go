// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. They are split into domain-specific
// files (trip.go, stop.go, city.go, etc.) but share the same Server struct so
// they can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string, start, end time.Time) (domain.Trip, error)
	Get(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error)
	List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, ownerID uuid.UUID, name string, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, ownerID uuid.UUID, name string) error
	Export(ctx context.Context, ownerID uuid.UUID, name string) ([]byte, string, error)
}

// StopServicer defines the stop operations, all addressed by trip and stop name.
type StopServicer interface {
	Add(ctx context.Context, ownerID uuid.UUID, tripName string, in domain.NewStop) (domain.Stop, error)
	Update(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, patch domain.StopPatch) (domain.Stop, error)
	Delete(ctx context.Context, ownerID uuid.UUID, tripName, stopName string) error
	AttachPoi(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, poiID uuid.UUID) error
	DetachPoi(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, poiID uuid.UUID) error
}

type CityServicer interface {
	List(ctx context.Context, region string, tags []string) ([]domain.City, error)
	GetByName(ctx context.Context, name, region string, userID *uuid.UUID) (domain.City, error)
	Weather(ctx context.Context, name, region string, userID *uuid.UUID) (domain.Weather, error)
	Pois(ctx context.Context, name, region string) (domain.PoiLookup, error)
	Overview(ctx context.Context, name, region string, userID *uuid.UUID) (domain.CityOverview, error)
}

type SearchServicer interface {
	Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.CitySearchResult, error)
}

type GeographyServicer interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	GetCountry(ctx context.Context, name string) (domain.Country, error)
	ListRegions(ctx context.Context, country string) ([]domain.Region, error)
	GetRegion(ctx context.Context, name, country string) (domain.Region, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
}

type PoiServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, poi domain.Poi) (domain.Poi, error)
	SaveExternal(ctx context.Context, ownerID uuid.UUID, ext domain.ExternalPoi) (domain.Poi, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Poi, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Poi, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAll(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type HistoryServicer interface {
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.SearchHistory], error)
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
}

// UserServicer reads and edits the caller's profile. Identity itself comes
// from the bearer token.
type UserServicer interface {
	Me(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.UserProfile, error)
}

// Services bundles the dependencies of a Server. Tests only set the ones
// the routes under test reach.
type Services struct {
	Trips     TripServicer
	Stops     StopServicer
	Cities    CityServicer
	Search    SearchServicer
	Geography GeographyServicer
	Pois      PoiServicer
	History   HistoryServicer
	Users     UserServicer
}

// Server serves every API endpoint.
type Server struct {
	trips     TripServicer
	stops     StopServicer
	cities    CityServicer
	search    SearchServicer
	geography GeographyServicer
	pois      PoiServicer
	history   HistoryServicer
	users     UserServicer
	logger    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(s Services, logger *slog.Logger) *Server {
	return &Server{
		trips:     s.Trips,
		stops:     s.Stops,
		cities:    s.Cities,
		search:    s.Search,
		geography: s.Geography,
		pois:      s.Pois,
		history:   s.History,
		users:     s.Users,
		logger:    logger,
	}
}
