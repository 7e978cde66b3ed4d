package service_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
	"github.com/SimonMage/TravelSobolev/internal/service"
)

// Hand-written test doubles. Each method is a function field: set only the
// ones a test needs; calling an unset one panics, which flags an unexpected call.

type mockTripRepo struct {
	create            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByNameAndOwner func(ctx context.Context, name string, ownerID uuid.UUID) (domain.Trip, error)
	listByOwner       func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete            func(ctx context.Context, id, ownerID uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByNameAndOwner(ctx context.Context, name string, ownerID uuid.UUID) (domain.Trip, error) {
	return m.getByNameAndOwner(ctx, name, ownerID)
}
func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByOwner(ctx, ownerID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.delete(ctx, id, ownerID)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockStopRepo struct {
	create      func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByName   func(ctx context.Context, tripID uuid.UUID, name string) (domain.Stop, error)
	listByTrip  func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	listByTrips func(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.Stop, error)
	update      func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete      func(ctx context.Context, tripID, stopID uuid.UUID) error
	attachPoi   func(ctx context.Context, stopID, poiID uuid.UUID) error
	detachPoi   func(ctx context.Context, stopID, poiID uuid.UUID) error
	listPois    func(ctx context.Context, stopID uuid.UUID) ([]domain.Poi, error)
}

func (m *mockStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, stop)
}
func (m *mockStopRepo) GetByName(ctx context.Context, tripID uuid.UUID, name string) (domain.Stop, error) {
	return m.getByName(ctx, tripID, name)
}
func (m *mockStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockStopRepo) ListByTrips(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.Stop, error) {
	return m.listByTrips(ctx, tripIDs)
}
func (m *mockStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.update(ctx, stop)
}
func (m *mockStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}
func (m *mockStopRepo) AttachPoi(ctx context.Context, stopID, poiID uuid.UUID) error {
	return m.attachPoi(ctx, stopID, poiID)
}
func (m *mockStopRepo) DetachPoi(ctx context.Context, stopID, poiID uuid.UUID) error {
	return m.detachPoi(ctx, stopID, poiID)
}
func (m *mockStopRepo) ListPois(ctx context.Context, stopID uuid.UUID) ([]domain.Poi, error) {
	return m.listPois(ctx, stopID)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockPoiRepo struct {
	create           func(ctx context.Context, poi domain.Poi) (domain.Poi, error)
	upsertExternal   func(ctx context.Context, poi domain.Poi) (domain.Poi, error)
	getByID          func(ctx context.Context, ownerID, id uuid.UUID) (domain.Poi, error)
	listByOwner      func(ctx context.Context, ownerID uuid.UUID) ([]domain.Poi, error)
	delete           func(ctx context.Context, ownerID, id uuid.UUID) error
	deleteAllByOwner func(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

func (m *mockPoiRepo) Create(ctx context.Context, poi domain.Poi) (domain.Poi, error) {
	return m.create(ctx, poi)
}
func (m *mockPoiRepo) UpsertExternal(ctx context.Context, poi domain.Poi) (domain.Poi, error) {
	return m.upsertExternal(ctx, poi)
}
func (m *mockPoiRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Poi, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockPoiRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Poi, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockPoiRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}
func (m *mockPoiRepo) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return m.deleteAllByOwner(ctx, ownerID)
}

var _ repo.PoiRepo = (*mockPoiRepo)(nil)

type mockGeographyRepo struct {
	findCityByID            func(ctx context.Context, id uuid.UUID) (domain.City, error)
	findCitiesByName        func(ctx context.Context, name string) ([]domain.City, error)
	findCityByNameAndRegion func(ctx context.Context, name, region string) (domain.City, error)
	findCitiesByTags        func(ctx context.Context, tags []string) ([]domain.City, error)
	searchCitiesByName      func(ctx context.Context, query string) ([]domain.City, error)
	listCities              func(ctx context.Context) ([]domain.City, error)
	listCitiesByRegionName  func(ctx context.Context, region string) ([]domain.City, error)
	listCountries           func(ctx context.Context) ([]domain.Country, error)
	findCountryByName       func(ctx context.Context, name string) (domain.Country, error)
	listRegions             func(ctx context.Context, country string) ([]domain.Region, error)
	findRegionsByName       func(ctx context.Context, name, country string) ([]domain.Region, error)
	listTags                func(ctx context.Context) ([]domain.Tag, error)
}

func (m *mockGeographyRepo) FindCityByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	return m.findCityByID(ctx, id)
}
func (m *mockGeographyRepo) FindCitiesByName(ctx context.Context, name string) ([]domain.City, error) {
	return m.findCitiesByName(ctx, name)
}
func (m *mockGeographyRepo) FindCityByNameAndRegion(ctx context.Context, name, region string) (domain.City, error) {
	return m.findCityByNameAndRegion(ctx, name, region)
}
func (m *mockGeographyRepo) FindCitiesByTags(ctx context.Context, tags []string) ([]domain.City, error) {
	return m.findCitiesByTags(ctx, tags)
}
func (m *mockGeographyRepo) SearchCitiesByName(ctx context.Context, query string) ([]domain.City, error) {
	return m.searchCitiesByName(ctx, query)
}
func (m *mockGeographyRepo) ListCities(ctx context.Context) ([]domain.City, error) {
	return m.listCities(ctx)
}
func (m *mockGeographyRepo) ListCitiesByRegionName(ctx context.Context, region string) ([]domain.City, error) {
	return m.listCitiesByRegionName(ctx, region)
}
func (m *mockGeographyRepo) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return m.listCountries(ctx)
}
func (m *mockGeographyRepo) FindCountryByName(ctx context.Context, name string) (domain.Country, error) {
	return m.findCountryByName(ctx, name)
}
func (m *mockGeographyRepo) ListRegions(ctx context.Context, country string) ([]domain.Region, error) {
	return m.listRegions(ctx, country)
}
func (m *mockGeographyRepo) FindRegionsByName(ctx context.Context, name, country string) ([]domain.Region, error) {
	return m.findRegionsByName(ctx, name, country)
}
func (m *mockGeographyRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return m.listTags(ctx)
}

var _ repo.GeographyRepo = (*mockGeographyRepo)(nil)

type mockHistoryRepo struct {
	appended []domain.SearchHistory

	appendErr   error
	listByUser  func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.SearchHistory, int64, error)
	clearByUser func(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Append records entries so tests can assert on what was written.
func (m *mockHistoryRepo) Append(_ context.Context, entry domain.SearchHistory) (domain.SearchHistory, error) {
	if m.appendErr != nil {
		return domain.SearchHistory{}, m.appendErr
	}
	m.appended = append(m.appended, entry)
	entry.ID = uuid.New()
	return entry, nil
}
func (m *mockHistoryRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.SearchHistory, int64, error) {
	return m.listByUser(ctx, userID, p)
}
func (m *mockHistoryRepo) ClearByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return m.clearByUser(ctx, userID)
}

var _ repo.SearchHistoryRepo = (*mockHistoryRepo)(nil)

type mockProfileRepo struct {
	get            func(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error)
	findByUsername func(ctx context.Context, username string) (domain.UserProfile, error)
	findByEmail    func(ctx context.Context, email string) (domain.UserProfile, error)
	save           func(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)
}

func (m *mockProfileRepo) Get(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error) {
	return m.get(ctx, userID)
}
func (m *mockProfileRepo) FindByUsername(ctx context.Context, username string) (domain.UserProfile, error) {
	return m.findByUsername(ctx, username)
}
func (m *mockProfileRepo) FindByEmail(ctx context.Context, email string) (domain.UserProfile, error) {
	return m.findByEmail(ctx, email)
}
func (m *mockProfileRepo) Save(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	return m.save(ctx, p)
}

var _ repo.ProfileRepo = (*mockProfileRepo)(nil)

// noProfiles is a ProfileRepo in which nobody has saved a profile yet.
func noProfiles() *mockProfileRepo {
	return &mockProfileRepo{
		get: func(context.Context, uuid.UUID) (domain.UserProfile, error) {
			return domain.UserProfile{}, domain.ErrNotFound
		},
	}
}

type mockGeocoder struct {
	searchCities func(ctx context.Context, query string, limit int) ([]domain.CitySearchResult, error)
}

func (m *mockGeocoder) SearchCities(ctx context.Context, query string, limit int) ([]domain.CitySearchResult, error) {
	return m.searchCities(ctx, query, limit)
}

var _ service.CityGeocoder = (*mockGeocoder)(nil)

type mockWeather struct {
	getWeather func(ctx context.Context, city domain.City, units domain.Units) (domain.Weather, error)
}

func (m *mockWeather) GetWeather(ctx context.Context, city domain.City, units domain.Units) (domain.Weather, error) {
	return m.getWeather(ctx, city, units)
}

var _ service.WeatherProvider = (*mockWeather)(nil)

type mockPois struct {
	lookupPois func(ctx context.Context, cityName string, lat, lon float64) domain.PoiLookup
}

func (m *mockPois) LookupPois(ctx context.Context, cityName string, lat, lon float64) domain.PoiLookup {
	return m.lookupPois(ctx, cityName, lat, lon)
}

var _ service.PoiProvider = (*mockPois)(nil)

// ---- shared fixtures -------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

var (
	roma = domain.City{ID: uuid.New(), Name: "Roma", RegionName: "Lazio", CountryName: "Italy",
		Latitude: 41.9, Longitude: 12.5, Tags: []string{"art", "history"}}
	springfieldIL = domain.City{ID: uuid.New(), Name: "Springfield", RegionName: "Illinois", CountryName: "USA"}
	springfieldOH = domain.City{ID: uuid.New(), Name: "Springfield", RegionName: "Ohio", CountryName: "USA"}
)

// italyTrip is the "Italy 2024" fixture, 2024-06-01 to 2024-06-10.
func italyTrip(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		OwnerID:   owner,
		Name:      "Italy 2024",
		StartDate: date(2024, 6, 1),
		EndDate:   date(2024, 6, 10),
	}
}

// geoWith serves the fixture cities by name and by (name, region).
func geoWith(cities ...domain.City) *mockGeographyRepo {
	match := func(name, region string) []domain.City {
		var out []domain.City
		for _, c := range cities {
			if strings.EqualFold(c.Name, name) && (region == "" || strings.EqualFold(c.RegionName, region)) {
				out = append(out, c)
			}
		}
		return out
	}
	return &mockGeographyRepo{
		findCityByID: func(_ context.Context, id uuid.UUID) (domain.City, error) {
			for _, c := range cities {
				if c.ID == id {
					return c, nil
				}
			}
			return domain.City{}, domain.ErrNotFound
		},
		findCitiesByName: func(_ context.Context, name string) ([]domain.City, error) {
			return match(name, ""), nil
		},
		findCityByNameAndRegion: func(_ context.Context, name, region string) (domain.City, error) {
			if got := match(name, region); len(got) > 0 {
				return got[0], nil
			}
			return domain.City{}, domain.ErrNotFound
		},
	}
}
