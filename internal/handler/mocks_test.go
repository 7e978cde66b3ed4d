package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/handler"
	"github.com/SimonMage/TravelSobolev/internal/middleware"
)

// Test doubles for the handler.*Servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	create func(ctx context.Context, ownerID uuid.UUID, name string, start, end time.Time) (domain.Trip, error)
	get    func(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error)
	list   func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update func(ctx context.Context, ownerID uuid.UUID, name string, patch domain.TripPatch) (domain.Trip, error)
	delete func(ctx context.Context, ownerID uuid.UUID, name string) error
	export func(ctx context.Context, ownerID uuid.UUID, name string) ([]byte, string, error)
}

func (m *mockTripServicer) Create(ctx context.Context, ownerID uuid.UUID, name string, start, end time.Time) (domain.Trip, error) {
	return m.create(ctx, ownerID, name, start, end)
}
func (m *mockTripServicer) Get(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error) {
	return m.get(ctx, ownerID, name)
}
func (m *mockTripServicer) List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.list(ctx, ownerID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, ownerID uuid.UUID, name string, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, ownerID, name, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	return m.delete(ctx, ownerID, name)
}
func (m *mockTripServicer) Export(ctx context.Context, ownerID uuid.UUID, name string) ([]byte, string, error) {
	return m.export(ctx, ownerID, name)
}

type mockStopServicer struct {
	add       func(ctx context.Context, ownerID uuid.UUID, tripName string, in domain.NewStop) (domain.Stop, error)
	update    func(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, patch domain.StopPatch) (domain.Stop, error)
	delete    func(ctx context.Context, ownerID uuid.UUID, tripName, stopName string) error
	attachPoi func(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, poiID uuid.UUID) error
	detachPoi func(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, poiID uuid.UUID) error
}

func (m *mockStopServicer) Add(ctx context.Context, ownerID uuid.UUID, tripName string, in domain.NewStop) (domain.Stop, error) {
	return m.add(ctx, ownerID, tripName, in)
}
func (m *mockStopServicer) Update(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, patch domain.StopPatch) (domain.Stop, error) {
	return m.update(ctx, ownerID, tripName, stopName, patch)
}
func (m *mockStopServicer) Delete(ctx context.Context, ownerID uuid.UUID, tripName, stopName string) error {
	return m.delete(ctx, ownerID, tripName, stopName)
}
func (m *mockStopServicer) AttachPoi(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, poiID uuid.UUID) error {
	return m.attachPoi(ctx, ownerID, tripName, stopName, poiID)
}
func (m *mockStopServicer) DetachPoi(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, poiID uuid.UUID) error {
	return m.detachPoi(ctx, ownerID, tripName, stopName, poiID)
}

type mockCityServicer struct {
	list      func(ctx context.Context, region string, tags []string) ([]domain.City, error)
	getByName func(ctx context.Context, name, region string, userID *uuid.UUID) (domain.City, error)
	weather   func(ctx context.Context, name, region string, userID *uuid.UUID) (domain.Weather, error)
	pois      func(ctx context.Context, name, region string) (domain.PoiLookup, error)
	overview  func(ctx context.Context, name, region string, userID *uuid.UUID) (domain.CityOverview, error)
}

func (m *mockCityServicer) List(ctx context.Context, region string, tags []string) ([]domain.City, error) {
	return m.list(ctx, region, tags)
}
func (m *mockCityServicer) GetByName(ctx context.Context, name, region string, userID *uuid.UUID) (domain.City, error) {
	return m.getByName(ctx, name, region, userID)
}
func (m *mockCityServicer) Weather(ctx context.Context, name, region string, userID *uuid.UUID) (domain.Weather, error) {
	return m.weather(ctx, name, region, userID)
}
func (m *mockCityServicer) Pois(ctx context.Context, name, region string) (domain.PoiLookup, error) {
	return m.pois(ctx, name, region)
}
func (m *mockCityServicer) Overview(ctx context.Context, name, region string, userID *uuid.UUID) (domain.CityOverview, error) {
	return m.overview(ctx, name, region, userID)
}

type mockSearchServicer struct {
	search func(ctx context.Context, query string, userID *uuid.UUID) ([]domain.CitySearchResult, error)
}

func (m *mockSearchServicer) Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.CitySearchResult, error) {
	return m.search(ctx, query, userID)
}

type mockGeographyServicer struct {
	listCountries func(ctx context.Context) ([]domain.Country, error)
	getCountry    func(ctx context.Context, name string) (domain.Country, error)
	listRegions   func(ctx context.Context, country string) ([]domain.Region, error)
	getRegion     func(ctx context.Context, name, country string) (domain.Region, error)
	listTags      func(ctx context.Context) ([]domain.Tag, error)
}

func (m *mockGeographyServicer) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return m.listCountries(ctx)
}
func (m *mockGeographyServicer) GetCountry(ctx context.Context, name string) (domain.Country, error) {
	return m.getCountry(ctx, name)
}
func (m *mockGeographyServicer) ListRegions(ctx context.Context, country string) ([]domain.Region, error) {
	return m.listRegions(ctx, country)
}
func (m *mockGeographyServicer) GetRegion(ctx context.Context, name, country string) (domain.Region, error) {
	return m.getRegion(ctx, name, country)
}
func (m *mockGeographyServicer) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return m.listTags(ctx)
}

type mockPoiServicer struct {
	create       func(ctx context.Context, ownerID uuid.UUID, poi domain.Poi) (domain.Poi, error)
	saveExternal func(ctx context.Context, ownerID uuid.UUID, ext domain.ExternalPoi) (domain.Poi, error)
	list         func(ctx context.Context, ownerID uuid.UUID) ([]domain.Poi, error)
	get          func(ctx context.Context, ownerID, id uuid.UUID) (domain.Poi, error)
	delete       func(ctx context.Context, ownerID, id uuid.UUID) error
	deleteAll    func(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

func (m *mockPoiServicer) Create(ctx context.Context, ownerID uuid.UUID, poi domain.Poi) (domain.Poi, error) {
	return m.create(ctx, ownerID, poi)
}
func (m *mockPoiServicer) SaveExternal(ctx context.Context, ownerID uuid.UUID, ext domain.ExternalPoi) (domain.Poi, error) {
	return m.saveExternal(ctx, ownerID, ext)
}
func (m *mockPoiServicer) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Poi, error) {
	return m.list(ctx, ownerID)
}
func (m *mockPoiServicer) Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Poi, error) {
	return m.get(ctx, ownerID, id)
}
func (m *mockPoiServicer) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}
func (m *mockPoiServicer) DeleteAll(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return m.deleteAll(ctx, ownerID)
}

type mockHistoryServicer struct {
	list  func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.SearchHistory], error)
	clear func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *mockHistoryServicer) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.SearchHistory], error) {
	return m.list(ctx, userID, p)
}
func (m *mockHistoryServicer) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	return m.clear(ctx, userID)
}

type mockUserServicer struct {
	me            func(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error)
	updateProfile func(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.UserProfile, error)
}

func (m *mockUserServicer) Me(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error) {
	return m.me(ctx, userID)
}
func (m *mockUserServicer) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.UserProfile, error) {
	return m.updateProfile(ctx, userID, patch)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer      = (*mockTripServicer)(nil)
	_ handler.StopServicer      = (*mockStopServicer)(nil)
	_ handler.CityServicer      = (*mockCityServicer)(nil)
	_ handler.SearchServicer    = (*mockSearchServicer)(nil)
	_ handler.GeographyServicer = (*mockGeographyServicer)(nil)
	_ handler.PoiServicer       = (*mockPoiServicer)(nil)
	_ handler.HistoryServicer   = (*mockHistoryServicer)(nil)
	_ handler.UserServicer      = (*mockUserServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// testUser is the identity the fake auth middleware attaches.
var testUser = uuid.MustParse("6f1c2b9e-0c57-4d57-9a4e-3f0f5c1d2a10")

// fakeRequire authenticates every request as testUser.
func fakeRequire(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), testUser)))
	})
}

// fakeOptional authenticates as testUser only when an Authorization header is sent.
func fakeOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			r = r.WithContext(middleware.WithUserID(r.Context(), testUser))
		}
		next.ServeHTTP(w, r)
	})
}

// newRouter wires a Server with the given mocks into the real router.
// This mirrors how main.go wires it in production, minus token checks.
func newRouter(s handler.Services) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(s, logger).Routes(fakeRequire, fakeOptional)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// serve sends one request through h and returns the recorder.
func serve(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// newAuthedRequest builds a request carrying a bearer token, which
// fakeOptional turns into testUser.
func newAuthedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func serveRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func tripFixture() domain.Trip {
	now := time.Now().UTC()
	return domain.Trip{
		ID:        uuid.New(),
		OwnerID:   testUser,
		Name:      "Italy 2024",
		StartDate: date(2024, 6, 1),
		EndDate:   date(2024, 6, 10),
		Stops:     []domain.Stop{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func romaStop(day int) domain.Stop {
	d := date(2024, 6, day)
	return domain.Stop{
		ID:         uuid.New(),
		CityID:     uuid.New(),
		CityName:   "Roma",
		RegionName: "Lazio",
		Name:       "roma_" + d.Format("2006-01-02"),
		StopDate:   d,
		Pois:       []domain.Poi{},
	}
}

func romaCity() domain.City {
	return domain.City{
		ID:          uuid.New(),
		Name:        "Roma",
		RegionName:  "Lazio",
		CountryName: "Italy",
		Latitude:    41.9028,
		Longitude:   12.4964,
		Tags:        []string{"art", "history"},
	}
}
