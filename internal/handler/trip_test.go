package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/handler"
)

func tripRouter(svc *mockTripServicer) http.Handler {
	return newRouter(handler.Services{Trips: svc})
}

// ---- POST /api/trips -------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var gotOwner uuid.UUID
	var gotStart, gotEnd time.Time
	svc := &mockTripServicer{
		create: func(_ context.Context, owner uuid.UUID, name string, start, end time.Time) (domain.Trip, error) {
			gotOwner, gotStart, gotEnd = owner, start, end
			assert.Equal(t, "Italy 2024", name)
			return fixture, nil
		},
	}

	rec := serve(tripRouter(svc), http.MethodPost, "/api/trips", jsonBody(t, map[string]any{
		"name":       "Italy 2024",
		"start_date": "2024-06-01",
		"end_date":   "2024-06-10",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testUser, gotOwner, "trip is owned by the caller")
	assert.True(t, gotStart.Equal(date(2024, 6, 1)))
	assert.True(t, gotEnd.Equal(date(2024, 6, 10)))

	resp := decode[map[string]any](t, rec)
	assert.Equal(t, fixture.ID.String(), resp["id"])
	assert.Equal(t, "2024-06-01", resp["start_date"])
	assert.Equal(t, "2024-06-10", resp["end_date"])
	assert.Equal(t, []any{}, resp["stops"], "stops must be [] not null")
}

func TestCreateTrip_400_InvertedDates(t *testing.T) {
	svc := &mockTripServicer{
		create: func(context.Context, uuid.UUID, string, time.Time, time.Time) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: Start date must be before or equal to end date", domain.ErrValidation)
		},
	}

	rec := serve(tripRouter(svc), http.MethodPost, "/api/trips", jsonBody(t, map[string]any{
		"name": "Backwards", "start_date": "2024-06-10", "end_date": "2024-06-01",
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "validation_error", e.Code)
	assert.Equal(t, "Start date must be before or equal to end date", e.Message)
}

func TestCreateTrip_409_DuplicateName(t *testing.T) {
	svc := &mockTripServicer{
		create: func(context.Context, uuid.UUID, string, time.Time, time.Time) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: repo.TripRepo.Create: %w: %s",
				domain.ErrConflict, "trips_owner_name_key")
		},
	}

	rec := serve(tripRouter(svc), http.MethodPost, "/api/trips", jsonBody(t, map[string]any{
		"name": "Italy 2024", "start_date": "2024-06-01", "end_date": "2024-06-10",
	}))

	require.Equal(t, http.StatusConflict, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "conflict", e.Code)
	assert.Equal(t, "A trip with this name already exists", e.Message)
}

func TestCreateTrip_400_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{name: "empty", body: "", msg: "request body is required"},
		{name: "not json", body: "{name:", msg: "request body is not valid JSON"},
		{name: "wrong type", body: `{"name": 42}`, msg: `field "name" has the wrong type`},
		{name: "bad date", body: `{"name": "x", "start_date": "06/01/2024"}`},
		{name: "unknown field", body: `{"title": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTripServicer{} // a nil create would panic if reached

			rec := serve(tripRouter(svc), http.MethodPost, "/api/trips", strings.NewReader(tt.body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, "validation_error", e.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, e.Message)
			}
		})
	}
}

// ---- GET /api/trips --------------------------------------------------------

func TestListTrips_200_Paginated(t *testing.T) {
	var gotParams domain.PaginationParams
	svc := &mockTripServicer{
		list: func(_ context.Context, owner uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
			assert.Equal(t, testUser, owner)
			gotParams = p
			return domain.Page[domain.Trip]{Items: []domain.Trip{tripFixture(), tripFixture()}, Total: 7}, nil
		},
	}

	rec := serve(tripRouter(svc), http.MethodGet, "/api/trips?page=2&limit=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 2}, gotParams)

	resp := decode[handler.PageResponse[handler.Trip]](t, rec)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 2, Total: 7}, resp.Pagination)
}

func TestListTrips_200_Empty(t *testing.T) {
	svc := &mockTripServicer{
		list: func(context.Context, uuid.UUID, domain.PaginationParams) (domain.Page[domain.Trip], error) {
			return domain.Page[domain.Trip]{}, nil
		},
	}

	rec := serve(tripRouter(svc), http.MethodGet, "/api/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	// Must be a JSON array, not null.
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListTrips_400_BadPagination(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"not an integer", "limit=ten", "limit must be an integer"},
		{"page overflowing the offset", "page=4611686018427387904&limit=100", "page must not exceed 1000000"},
		{"page out of int range", "page=99999999999999999999", "page must be an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Any service call panics: the request must be rejected first.
			rec := serve(tripRouter(&mockTripServicer{}), http.MethodGet, "/api/trips?"+tt.query, nil)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
		})
	}
}

func TestListTrips_LastAllowedPage(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context, _ uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
			assert.Equal(t, domain.MaxPage, p.Page)
			assert.Positive(t, p.Offset())
			return domain.Page[domain.Trip]{Total: 3}, nil
		},
	}

	rec := serve(tripRouter(svc), http.MethodGet, "/api/trips?page=1000000&limit=100", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decode[handler.PageResponse[handler.Trip]](t, rec).Pagination.Total)
}

// ---- GET /api/trips/{tripName} ---------------------------------------------

func TestGetTrip_200_WithStops(t *testing.T) {
	fixture := tripFixture()
	stop := romaStop(5)
	stop.Pois = []domain.Poi{{ID: uuid.New(), Name: "Colosseo"}}
	fixture.Stops = []domain.Stop{stop}

	svc := &mockTripServicer{
		get: func(_ context.Context, _ uuid.UUID, name string) (domain.Trip, error) {
			assert.Equal(t, "Italy 2024", name, "path parameter is unescaped")
			return fixture, nil
		},
	}

	rec := serve(tripRouter(svc), http.MethodGet, "/api/trips/Italy%202024", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Trip](t, rec)
	require.Len(t, resp.Stops, 1)
	assert.Equal(t, "roma_2024-06-05", resp.Stops[0].Name)
	assert.Equal(t, "Roma", resp.Stops[0].City)
	assert.Equal(t, "Lazio", resp.Stops[0].Region)
	require.Len(t, resp.Stops[0].Pois, 1)
	assert.Equal(t, "Colosseo", resp.Stops[0].Pois[0].Name)
}

func TestGetTrip_EscapedSlashInName(t *testing.T) {
	svc := &mockTripServicer{
		get: func(_ context.Context, _ uuid.UUID, name string) (domain.Trip, error) {
			assert.Equal(t, "Rome/Florence", name)
			return tripFixture(), nil
		},
	}

	rec := serve(tripRouter(svc), http.MethodGet, "/api/trips/Rome%2FFlorence", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		get: func(context.Context, uuid.UUID, string) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Get: repo.TripRepo.GetByNameAndOwner: %w", domain.ErrNotFound)
		},
	}

	rec := serve(tripRouter(svc), http.MethodGet, "/api/trips/Nowhere", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "not_found", e.Code)
	assert.Equal(t, "trip not found", e.Message)
}

// ---- PUT /api/trips/{tripName} ---------------------------------------------

func TestUpdateTrip_200_PartialPatch(t *testing.T) {
	fixture := tripFixture()
	fixture.EndDate = date(2024, 6, 12)
	svc := &mockTripServicer{
		update: func(_ context.Context, _ uuid.UUID, name string, patch domain.TripPatch) (domain.Trip, error) {
			assert.Equal(t, "Italy 2024", name)
			assert.Nil(t, patch.Name)
			assert.Nil(t, patch.StartDate)
			require.NotNil(t, patch.EndDate)
			assert.True(t, patch.EndDate.Equal(date(2024, 6, 12)))
			return fixture, nil
		},
	}

	rec := serve(tripRouter(svc), http.MethodPut, "/api/trips/Italy%202024", jsonBody(t, map[string]any{
		"end_date": "2024-06-12",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-06-12", decode[map[string]any](t, rec)["end_date"])
}

// Shrinking a trip so that a stop falls outside it is a 400.
func TestUpdateTrip_400_OrphansStop(t *testing.T) {
	svc := &mockTripServicer{
		update: func(context.Context, uuid.UUID, string, domain.TripPatch) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: Stop date must be within trip date range", domain.ErrValidation)
		},
	}

	rec := serve(tripRouter(svc), http.MethodPut, "/api/trips/Italy%202024", jsonBody(t, map[string]any{
		"end_date": "2024-06-03",
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Stop date must be within trip date range", decodeError(t, rec).Message)
}

// ---- DELETE /api/trips/{tripName} ------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, owner uuid.UUID, name string) error {
			assert.Equal(t, testUser, owner)
			assert.Equal(t, "Italy 2024", name)
			return nil
		},
	}

	rec := serve(tripRouter(svc), http.MethodDelete, "/api/trips/Italy%202024", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(context.Context, uuid.UUID, string) error { return domain.ErrNotFound },
	}

	rec := serve(tripRouter(svc), http.MethodDelete, "/api/trips/Nowhere", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTripRoutes_500_HidesInternalError(t *testing.T) {
	svc := &mockTripServicer{
		get: func(context.Context, uuid.UUID, string) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByNameAndOwner: dial tcp 10.0.0.3:5432: connection refused")
		},
	}

	rec := serve(tripRouter(svc), http.MethodGet, "/api/trips/Italy", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "internal_error", e.Code)
	assert.NotContains(t, e.Message, "10.0.0.3")
}
