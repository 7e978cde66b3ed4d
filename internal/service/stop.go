package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
)

// StopService implements the itinerary operations on a trip's stops.
// Stops are addressed by trip name and derived stop name, both scoped to the owner.
type StopService struct {
	trips    repo.TripRepo
	stops    repo.StopRepo
	pois     repo.PoiRepo
	resolver *CityResolver
}

// NewStopService constructs a StopService backed by the provided repos.
func NewStopService(trips repo.TripRepo, stops repo.StopRepo, pois repo.PoiRepo, resolver *CityResolver) *StopService {
	return &StopService{trips: trips, stops: stops, pois: pois, resolver: resolver}
}

// Add appends a stop to the named trip. In order: the trip must exist, the
// date must fall inside the trip, the city must resolve to exactly one city
// (by id when one is given), and no stop with the same derived name may
// already exist.
func (s *StopService) Add(ctx context.Context, ownerID uuid.UUID, tripName string, in domain.NewStop) (domain.Stop, error) {
	trip, err := s.trips.GetByNameAndOwner(ctx, tripName, ownerID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Add: %w", err)
	}

	date := dateOnly(in.StopDate)
	if err := validateStopDate(trip, date); err != nil {
		return domain.Stop{}, err
	}

	city, err := s.city(ctx, in)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Add: %w", err)
	}

	name := DeriveStopName(city.Name, date)
	switch _, err := s.stops.GetByName(ctx, trip.ID, name); {
	case err == nil:
		return domain.Stop{}, stopConflict(city.Name, date)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Stop{}, fmt.Errorf("service.StopService.Add: %w", err)
	}

	result, err := s.stops.Create(ctx, domain.Stop{
		TripID:   trip.ID,
		CityID:   city.ID,
		Name:     name,
		StopDate: date,
		Notes:    strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Add: %w", err)
	}
	return result, nil
}

// Update applies patch to a stop. A new date must fall inside the trip and
// renames the stop; the rename fails with domain.ErrConflict when another stop
// of the trip already carries that name.
func (s *StopService) Update(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, patch domain.StopPatch) (domain.Stop, error) {
	trip, stop, err := s.locate(ctx, ownerID, tripName, stopName)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}

	if patch.StopDate != nil {
		date := dateOnly(*patch.StopDate)
		if err := validateStopDate(trip, date); err != nil {
			return domain.Stop{}, err
		}
		name := DeriveStopName(stop.CityName, date)
		if !strings.EqualFold(name, stop.Name) {
			switch other, err := s.stops.GetByName(ctx, trip.ID, name); {
			case err == nil && other.ID != stop.ID:
				return domain.Stop{}, stopConflict(stop.CityName, date)
			case err != nil && !errors.Is(err, domain.ErrNotFound):
				return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
			}
			stop.Name = name
		}
		stop.StopDate = date
	}
	if patch.Notes != nil {
		stop.Notes = strings.TrimSpace(*patch.Notes)
	}

	result, err := s.stops.Update(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a stop and its POI links from the trip.
func (s *StopService) Delete(ctx context.Context, ownerID uuid.UUID, tripName, stopName string) error {
	trip, stop, err := s.locate(ctx, ownerID, tripName, stopName)
	if err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	if err := s.stops.Delete(ctx, trip.ID, stop.ID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

// AttachPoi links one of the owner's POIs to a stop. Attaching twice is a no-op.
func (s *StopService) AttachPoi(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, poiID uuid.UUID) error {
	_, stop, err := s.locate(ctx, ownerID, tripName, stopName)
	if err != nil {
		return fmt.Errorf("service.StopService.AttachPoi: %w", err)
	}
	if _, err := s.pois.GetByID(ctx, ownerID, poiID); err != nil {
		return fmt.Errorf("service.StopService.AttachPoi: %w", err)
	}
	if err := s.stops.AttachPoi(ctx, stop.ID, poiID); err != nil {
		return fmt.Errorf("service.StopService.AttachPoi: %w", err)
	}
	return nil
}

// DetachPoi unlinks a POI from a stop.
// Returns domain.ErrNotFound if the POI was not linked.
func (s *StopService) DetachPoi(ctx context.Context, ownerID uuid.UUID, tripName, stopName string, poiID uuid.UUID) error {
	_, stop, err := s.locate(ctx, ownerID, tripName, stopName)
	if err != nil {
		return fmt.Errorf("service.StopService.DetachPoi: %w", err)
	}
	if err := s.stops.DetachPoi(ctx, stop.ID, poiID); err != nil {
		return fmt.Errorf("service.StopService.DetachPoi: %w", err)
	}
	return nil
}

func (s *StopService) city(ctx context.Context, in domain.NewStop) (domain.City, error) {
	if in.CityID != nil {
		return s.resolver.ByID(ctx, *in.CityID)
	}
	return s.resolver.Lookup(ctx, in.CityName, in.RegionName)
}

func (s *StopService) locate(ctx context.Context, ownerID uuid.UUID, tripName, stopName string) (domain.Trip, domain.Stop, error) {
	trip, err := s.trips.GetByNameAndOwner(ctx, tripName, ownerID)
	if err != nil {
		return domain.Trip{}, domain.Stop{}, err
	}
	stop, err := s.stops.GetByName(ctx, trip.ID, stopName)
	if err != nil {
		return domain.Trip{}, domain.Stop{}, err
	}
	return trip, stop, nil
}
