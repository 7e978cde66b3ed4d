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

// CityResolver turns a free-text city name, optionally qualified by a region
// name, into exactly one city. Several cities sharing a name without a region
// to pick between them is reported as Ambiguous, never resolved arbitrarily.
type CityResolver struct {
	geo repo.GeographyRepo
}

// NewCityResolver constructs a CityResolver over the geography store.
func NewCityResolver(geo repo.GeographyRepo) *CityResolver {
	return &CityResolver{geo: geo}
}

// Resolve looks up cityName, scoped to regionName when it is not blank.
// The error return is reserved for store failures; a missing or ambiguous city
// is reported through the returned CityResolution.
func (r *CityResolver) Resolve(ctx context.Context, cityName, regionName string) (domain.CityResolution, error) {
	cityName = strings.TrimSpace(cityName)
	regionName = strings.TrimSpace(regionName)

	if regionName != "" {
		city, err := r.geo.FindCityByNameAndRegion(ctx, cityName, regionName)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.CityNotFound(cityName, regionName), nil
		}
		if err != nil {
			return domain.CityResolution{}, fmt.Errorf("service.CityResolver.Resolve: %w", err)
		}
		return domain.ResolvedCity(city), nil
	}

	cities, err := r.geo.FindCitiesByName(ctx, cityName)
	if err != nil {
		return domain.CityResolution{}, fmt.Errorf("service.CityResolver.Resolve: %w", err)
	}
	switch len(cities) {
	case 0:
		return domain.CityNotFound(cityName, ""), nil
	case 1:
		return domain.ResolvedCity(cities[0]), nil
	default:
		return domain.AmbiguousCity(cityName, cities), nil
	}
}

// Lookup is Resolve for callers that only want a city or an error.
// A blank name is a validation error.
func (r *CityResolver) Lookup(ctx context.Context, cityName, regionName string) (domain.City, error) {
	if strings.TrimSpace(cityName) == "" {
		return domain.City{}, fmt.Errorf("%w: city name is required", domain.ErrValidation)
	}
	res, err := r.Resolve(ctx, cityName, regionName)
	if err != nil {
		return domain.City{}, err
	}
	if err := res.Err(); err != nil {
		return domain.City{}, err
	}
	return res.City, nil
}

// ByID returns the city with that id, as handed out in local search results.
func (r *CityResolver) ByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	city, err := r.geo.FindCityByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.City{}, fmt.Errorf("%w: city %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityResolver.ByID: %w", err)
	}
	return city, nil
}
