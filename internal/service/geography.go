package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
)

// GeographyService serves the reference data: countries, regions and tags.
type GeographyService struct {
	geo repo.GeographyRepo
}

// NewGeographyService constructs a GeographyService.
func NewGeographyService(geo repo.GeographyRepo) *GeographyService {
	return &GeographyService{geo: geo}
}

func (s *GeographyService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	countries, err := s.geo.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.GeographyService.ListCountries: %w", err)
	}
	return countries, nil
}

func (s *GeographyService) GetCountry(ctx context.Context, name string) (domain.Country, error) {
	country, err := s.geo.FindCountryByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.Country{}, fmt.Errorf("service.GeographyService.GetCountry: %w", err)
	}
	return country, nil
}

// ListRegions returns all regions, or those of the named country.
// An unknown country is domain.ErrNotFound rather than an empty list.
func (s *GeographyService) ListRegions(ctx context.Context, country string) ([]domain.Region, error) {
	country = strings.TrimSpace(country)
	if country != "" {
		if _, err := s.geo.FindCountryByName(ctx, country); err != nil {
			return nil, fmt.Errorf("service.GeographyService.ListRegions: %w", err)
		}
	}
	regions, err := s.geo.ListRegions(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("service.GeographyService.ListRegions: %w", err)
	}
	return regions, nil
}

// GetRegion returns the region with that name. Region names repeat across
// countries, so without a country more than one match is ambiguous, as it is
// for cities.
func (s *GeographyService) GetRegion(ctx context.Context, name, country string) (domain.Region, error) {
	name = strings.TrimSpace(name)
	regions, err := s.geo.FindRegionsByName(ctx, name, strings.TrimSpace(country))
	if err != nil {
		return domain.Region{}, fmt.Errorf("service.GeographyService.GetRegion: %w", err)
	}
	switch len(regions) {
	case 0:
		return domain.Region{}, fmt.Errorf("%w: region '%s'", domain.ErrNotFound, name)
	case 1:
		return regions[0], nil
	default:
		return domain.Region{}, fmt.Errorf("%w: %w: Multiple regions found with name '%s'. Please specify the country.",
			domain.ErrValidation, domain.ErrAmbiguousCity, name)
	}
}

func (s *GeographyService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.geo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.GeographyService.ListTags: %w", err)
	}
	return tags, nil
}
