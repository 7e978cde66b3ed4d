package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
)

// WeatherProvider returns current conditions for a city in the given units.
type WeatherProvider interface {
	GetWeather(ctx context.Context, city domain.City, units domain.Units) (domain.Weather, error)
}

// PoiProvider returns points of interest around a location. It never fails.
type PoiProvider interface {
	LookupPois(ctx context.Context, cityName string, lat, lon float64) domain.PoiLookup
}

// CityService serves city lookups and the per-city weather and POI views.
type CityService struct {
	resolver *CityResolver
	geo      repo.GeographyRepo
	history  repo.SearchHistoryRepo
	profiles repo.ProfileRepo
	weather  WeatherProvider
	pois     PoiProvider
	logger   *slog.Logger
}

// NewCityService constructs a CityService.
func NewCityService(
	resolver *CityResolver,
	geo repo.GeographyRepo,
	history repo.SearchHistoryRepo,
	profiles repo.ProfileRepo,
	weather WeatherProvider,
	pois PoiProvider,
	logger *slog.Logger,
) *CityService {
	return &CityService{
		resolver: resolver,
		geo:      geo,
		history:  history,
		profiles: profiles,
		weather:  weather,
		pois:     pois,
		logger:   logger,
	}
}

// List returns every city, or the cities carrying any of tags, or the cities
// of every region named region. Both filters may be combined.
func (s *CityService) List(ctx context.Context, region string, tags []string) ([]domain.City, error) {
	region = strings.TrimSpace(region)
	tags = compactTags(tags)

	var (
		cities []domain.City
		err    error
	)
	switch {
	case len(tags) > 0:
		cities, err = s.geo.FindCitiesByTags(ctx, tags)
	case region != "":
		cities, err = s.geo.ListCitiesByRegionName(ctx, region)
	default:
		cities, err = s.geo.ListCities(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("service.CityService.List: %w", err)
	}

	if len(tags) > 0 && region != "" {
		filtered := make([]domain.City, 0, len(cities))
		for _, c := range cities {
			if strings.EqualFold(c.RegionName, region) {
				filtered = append(filtered, c)
			}
		}
		cities = filtered
	}
	return cities, nil
}

// GetByName resolves one city. When userID is set the lookup is recorded in
// the user's search history.
func (s *CityService) GetByName(ctx context.Context, name, region string, userID *uuid.UUID) (domain.City, error) {
	city, err := s.resolver.Lookup(ctx, name, region)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.GetByName: %w", err)
	}
	if userID != nil {
		entry := domain.SearchHistory{UserID: *userID, Query: city.Name, CityID: &city.ID}
		if _, err := s.history.Append(ctx, entry); err != nil {
			return domain.City{}, fmt.Errorf("service.CityService.GetByName: %w", err)
		}
	}
	return city, nil
}

// Weather returns current conditions for the resolved city, in the caller's
// preferred units when userID is set and metric otherwise.
// Returns domain.ErrExternalUnavailable when the provider cannot answer.
func (s *CityService) Weather(ctx context.Context, name, region string, userID *uuid.UUID) (domain.Weather, error) {
	city, err := s.resolver.Lookup(ctx, name, region)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("service.CityService.Weather: %w", err)
	}
	units, err := s.unitsFor(ctx, userID)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("service.CityService.Weather: %w", err)
	}
	w, err := s.weather.GetWeather(ctx, city, units)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("service.CityService.Weather: %w", err)
	}
	return w, nil
}

// Pois returns the points of interest around the resolved city, never empty.
func (s *CityService) Pois(ctx context.Context, name, region string) (domain.PoiLookup, error) {
	city, err := s.resolver.Lookup(ctx, name, region)
	if err != nil {
		return domain.PoiLookup{}, fmt.Errorf("service.CityService.Pois: %w", err)
	}
	return s.pois.LookupPois(ctx, city.Name, city.Latitude, city.Longitude), nil
}

// Overview fetches weather and POIs for the resolved city in parallel.
// A weather failure leaves Weather nil instead of failing the overview.
func (s *CityService) Overview(ctx context.Context, name, region string, userID *uuid.UUID) (domain.CityOverview, error) {
	city, err := s.resolver.Lookup(ctx, name, region)
	if err != nil {
		return domain.CityOverview{}, fmt.Errorf("service.CityService.Overview: %w", err)
	}
	units, err := s.unitsFor(ctx, userID)
	if err != nil {
		return domain.CityOverview{}, fmt.Errorf("service.CityService.Overview: %w", err)
	}

	out := domain.CityOverview{City: city}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := s.weather.GetWeather(gctx, city, units)
		if err != nil {
			s.logger.WarnContext(ctx, "weather unavailable for overview",
				slog.String("city", city.Name), slog.String("error", err.Error()))
			return nil
		}
		out.Weather = &w
		return nil
	})
	g.Go(func() error {
		out.Pois = s.pois.LookupPois(gctx, city.Name, city.Latitude, city.Longitude)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.CityOverview{}, fmt.Errorf("service.CityService.Overview: %w", err)
	}
	return out, nil
}

// unitsFor returns the user's preferred units, metric for anonymous callers
// and users without a profile.
func (s *CityService) unitsFor(ctx context.Context, userID *uuid.UUID) (domain.Units, error) {
	if userID == nil {
		return domain.UnitsMetric, nil
	}
	p, err := s.profiles.Get(ctx, *userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UnitsMetric, nil
	}
	if err != nil {
		return "", err
	}
	return p.PreferredUnits, nil
}

func compactTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
