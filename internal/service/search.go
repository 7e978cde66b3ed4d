package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/repo"
)

// externalSearchLimit caps the geocoding fallback.
const externalSearchLimit = 10

// CityGeocoder is the external city search the orchestrator falls back to.
// *external.Client satisfies it.
type CityGeocoder interface {
	SearchCities(ctx context.Context, query string, limit int) ([]domain.CitySearchResult, error)
}

// SearchService runs the city search chain: local substring match first,
// external geocoding only when nothing matched locally.
type SearchService struct {
	geo      repo.GeographyRepo
	history  repo.SearchHistoryRepo
	geocoder CityGeocoder
	logger   *slog.Logger
}

// NewSearchService constructs a SearchService.
func NewSearchService(geo repo.GeographyRepo, history repo.SearchHistoryRepo, geocoder CityGeocoder, logger *slog.Logger) *SearchService {
	return &SearchService{geo: geo, history: history, geocoder: geocoder, logger: logger}
}

// Search returns the cities matching query. Geocoding failures are logged and
// yield an empty list instead of an error. When userID is set the search is
// recorded with the first local hit, if any, whichever source answered.
func (s *SearchService) Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.CitySearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	local, err := s.geo.SearchCitiesByName(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("service.SearchService.Search: %w", err)
	}

	results := make([]domain.CitySearchResult, 0, len(local))
	for _, c := range local {
		results = append(results, localResult(c))
	}
	if len(results) == 0 {
		results = s.searchExternal(ctx, query)
	}

	if userID != nil {
		entry := domain.SearchHistory{UserID: *userID, Query: query}
		if len(local) > 0 {
			entry.CityID = &local[0].ID
		}
		if _, err := s.history.Append(ctx, entry); err != nil {
			return nil, fmt.Errorf("service.SearchService.Search: %w", err)
		}
	}
	return results, nil
}

func (s *SearchService) searchExternal(ctx context.Context, query string) []domain.CitySearchResult {
	results, err := s.geocoder.SearchCities(ctx, query, externalSearchLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "external city search failed",
			slog.String("query", query), slog.String("error", err.Error()))
		return []domain.CitySearchResult{}
	}
	return results
}

func localResult(c domain.City) domain.CitySearchResult {
	id := c.ID
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.CitySearchResult{
		PlaceID:     "local_" + c.ID.String(),
		Name:        c.Name,
		Region:      c.RegionName,
		Country:     c.CountryName,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		LocalCityID: &id,
		Tags:        tags,
		Source:      domain.SourceLocal,
	}
}
