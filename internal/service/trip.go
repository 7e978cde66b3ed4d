// Package service contains the business logic for the travel planner.
// Services validate inputs, enforce business rules, and orchestrate repo and
// provider calls. No SQL lives here: services depend on repo interfaces, not
// implementations. Every trip and stop lookup is scoped by owner, so another
// user's data is indistinguishable from missing data.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, stops repo.StopRepo) *TripService {
	return &TripService{trips: trips, stops: stops}
}

// Create validates and persists a new, empty trip.
// Returns domain.ErrValidation for a blank or overlong name or an inverted
// date range, domain.ErrConflict if the owner already has a trip with that name.
func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, name string, start, end time.Time) (domain.Trip, error) {
	name, err := validateTripName(name)
	if err != nil {
		return domain.Trip{}, err
	}
	start, end = dateOnly(start), dateOnly(end)
	if err := validateTripDates(start, end); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Create(ctx, domain.Trip{OwnerID: ownerID, Name: name, StartDate: start, EndDate: end})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	result.Stops = []domain.Stop{}
	return result, nil
}

// Get returns the full itinerary: the trip, its stops in date order and the
// POIs linked to each stop.
func (s *TripService) Get(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error) {
	trip, err := s.loadWithStops(ctx, ownerID, name)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	for i := range trip.Stops {
		pois, err := s.stops.ListPois(ctx, trip.Stops[i].ID)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
		}
		trip.Stops[i].Pois = pois
	}
	return trip, nil
}

// List returns one page of the owner's trips, latest start date first.
// Stops are included, their POIs are not.
func (s *TripService) List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	trips, total, err := s.trips.ListByOwner(ctx, ownerID, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.List: %w", err)
	}

	ids := make([]uuid.UUID, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}
	byTrip, err := s.stops.ListByTrips(ctx, ids)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.List: %w", err)
	}
	for i := range trips {
		trips[i].Stops = byTrip[trips[i].ID]
		if trips[i].Stops == nil {
			trips[i].Stops = []domain.Stop{}
		}
	}
	return domain.Page[domain.Trip]{Items: trips, Total: total}, nil
}

// Update applies patch to the named trip. The resulting date range must be
// valid and must still cover every existing stop; otherwise nothing is written.
// Returns domain.ErrConflict when renaming onto another trip of the same owner.
func (s *TripService) Update(ctx context.Context, ownerID uuid.UUID, name string, patch domain.TripPatch) (domain.Trip, error) {
	trip, err := s.loadWithStops(ctx, ownerID, name)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if patch.Name != nil {
		if trip.Name, err = validateTripName(*patch.Name); err != nil {
			return domain.Trip{}, err
		}
	}
	if patch.StartDate != nil {
		trip.StartDate = dateOnly(*patch.StartDate)
	}
	if patch.EndDate != nil {
		trip.EndDate = dateOnly(*patch.EndDate)
	}
	if err := validateTripDates(trip.StartDate, trip.EndDate); err != nil {
		return domain.Trip{}, err
	}
	for _, stop := range trip.Stops {
		if err := validateStopDate(trip, stop.StopDate); err != nil {
			return domain.Trip{}, err
		}
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	result.Stops = trip.Stops
	return result, nil
}

// Delete removes the named trip together with its stops and their POI links.
func (s *TripService) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	trip, err := s.trips.GetByNameAndOwner(ctx, name, ownerID)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.trips.Delete(ctx, trip.ID, ownerID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Export renders the named trip as CSV and returns the bytes together with
// the attachment file name.
func (s *TripService) Export(ctx context.Context, ownerID uuid.UUID, name string) ([]byte, string, error) {
	trip, err := s.loadWithStops(ctx, ownerID, name)
	if err != nil {
		return nil, "", fmt.Errorf("service.TripService.Export: %w", err)
	}
	return ExportTripCSV(trip), ExportFileName(trip.Name), nil
}

func (s *TripService) loadWithStops(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error) {
	trip, err := s.trips.GetByNameAndOwner(ctx, name, ownerID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.Stops, err = s.stops.ListByTrip(ctx, trip.ID); err != nil {
		return domain.Trip{}, err
	}
	return trip, nil
}
