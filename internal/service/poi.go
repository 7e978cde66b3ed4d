package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
)

// PoiService manages the user's saved points of interest.
type PoiService struct {
	pois repo.PoiRepo
}

// NewPoiService constructs a PoiService.
func NewPoiService(pois repo.PoiRepo) *PoiService {
	return &PoiService{pois: pois}
}

// Create saves a hand-entered POI.
// Returns domain.ErrConflict if the owner already has a POI with that name.
func (s *PoiService) Create(ctx context.Context, ownerID uuid.UUID, poi domain.Poi) (domain.Poi, error) {
	poi.OwnerID = ownerID
	poi.ExternalID = ""
	poi.Name = strings.TrimSpace(poi.Name)
	poi.Description = strings.TrimSpace(poi.Description)
	if err := validatePoi(poi); err != nil {
		return domain.Poi{}, err
	}

	result, err := s.pois.Create(ctx, poi)
	if err != nil {
		return domain.Poi{}, fmt.Errorf("service.PoiService.Create: %w", err)
	}
	return result, nil
}

// SaveExternal stores a provider or synthetic POI under its place id. Saving
// the same place twice returns the stored POI.
func (s *PoiService) SaveExternal(ctx context.Context, ownerID uuid.UUID, ext domain.ExternalPoi) (domain.Poi, error) {
	if strings.TrimSpace(ext.PlaceID) == "" {
		return domain.Poi{}, fmt.Errorf("%w: place_id is required", domain.ErrValidation)
	}
	raw, err := json.Marshal(ext)
	if err != nil {
		return domain.Poi{}, fmt.Errorf("service.PoiService.SaveExternal: %w", err)
	}

	description := ext.Description
	if description == "" {
		description = ext.Address
	}
	lat, lon := ext.Latitude, ext.Longitude
	poi := domain.Poi{
		OwnerID:     ownerID,
		ExternalID:  ext.PlaceID,
		Name:        strings.TrimSpace(ext.Name),
		Description: description,
		Latitude:    &lat,
		Longitude:   &lon,
		Raw:         raw,
	}
	if err := validatePoi(poi); err != nil {
		return domain.Poi{}, err
	}

	result, err := s.pois.UpsertExternal(ctx, poi)
	if err != nil {
		return domain.Poi{}, fmt.Errorf("service.PoiService.SaveExternal: %w", err)
	}
	return result, nil
}

func (s *PoiService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Poi, error) {
	pois, err := s.pois.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.PoiService.List: %w", err)
	}
	return pois, nil
}

func (s *PoiService) Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Poi, error) {
	poi, err := s.pois.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Poi{}, fmt.Errorf("service.PoiService.Get: %w", err)
	}
	return poi, nil
}

func (s *PoiService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.pois.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.PoiService.Delete: %w", err)
	}
	return nil
}

// DeleteAll removes every POI of the owner and reports how many went.
func (s *PoiService) DeleteAll(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	n, err := s.pois.DeleteAllByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("service.PoiService.DeleteAll: %w", err)
	}
	return n, nil
}

// validatePoi enforces the rules shared by Create and SaveExternal.
func validatePoi(poi domain.Poi) error {
	if poi.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if (poi.Latitude == nil) != (poi.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be given together", domain.ErrValidation)
	}
	if poi.Latitude != nil && (*poi.Latitude < -90 || *poi.Latitude > 90) {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if poi.Longitude != nil && (*poi.Longitude < -180 || *poi.Longitude > 180) {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	return nil
}
