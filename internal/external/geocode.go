package external

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

type geocodeResponse struct {
	Results []struct {
		PlaceID string  `json:"place_id"`
		Name    string  `json:"name"`
		City    string  `json:"city"`
		State   string  `json:"state"`
		County  string  `json:"county"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"results"`
}

// SearchCities asks the geocoding provider for up to limit cities matching query.
// Results naming neither a city nor a place are dropped. Unlike LookupPois there
// is no fallback: provider failures are returned to the caller.
func (c *Client) SearchCities(ctx context.Context, query string, limit int) ([]domain.CitySearchResult, error) {
	q := url.Values{}
	q.Set("text", query)
	q.Set("type", "city")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("format", "json")
	q.Set("apiKey", c.geocoding.apiKey)

	var resp geocodeResponse
	if err := c.geocoding.getJSON(ctx, "/v1/geocode/search", q, &resp); err != nil {
		return nil, fmt.Errorf("external.Client.SearchCities: %w", err)
	}

	results := make([]domain.CitySearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		name := r.City
		if name == "" {
			name = r.Name
		}
		if name == "" {
			continue
		}
		region := r.State
		if region == "" {
			region = r.County
		}
		results = append(results, domain.CitySearchResult{
			PlaceID:   r.PlaceID,
			Name:      name,
			Region:    region,
			Country:   r.Country,
			Latitude:  r.Lat,
			Longitude: r.Lon,
			Tags:      []string{},
			Source:    domain.SourceGeoapify,
		})
	}
	return results, nil
}
