package external

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/metrics"
)

// poiCategories are the tourism-relevant place categories requested from the provider.
var poiCategories = []string{
	"tourism.sights",
	"tourism.attraction",
	"entertainment.museum",
	"entertainment.culture",
	"catering.restaurant",
	"commercial.shopping_mall",
	"leisure.park",
	"building.historic",
}

const (
	poiRadiusMeters = 10000
	poiLimit        = 50
)

type placesResponse struct {
	Features []struct {
		Properties *struct {
			PlaceID    string   `json:"place_id"`
			Name       string   `json:"name"`
			Categories []string `json:"categories"`
			Lat        float64  `json:"lat"`
			Lon        float64  `json:"lon"`
			Formatted  string   `json:"formatted"`
		} `json:"properties"`
	} `json:"features"`
}

// LookupPois returns points of interest around (lat, lon). It tries the places
// provider first and falls back to SyntheticPois when the provider fails or
// returns no feature with a name, so the result is never empty.
func (c *Client) LookupPois(ctx context.Context, cityName string, lat, lon float64) domain.PoiLookup {
	pois, err := c.fetchPois(ctx, lat, lon)
	switch {
	case err != nil:
		c.logger.Warn("places provider unavailable, using synthetic POIs",
			slog.String("city", cityName), slog.String("error", err.Error()))
		return syntheticLookup(cityName, lat, lon, domain.FallbackProviderError)
	case len(pois) == 0:
		c.logger.Info("places provider returned no usable POIs, using synthetic POIs",
			slog.String("city", cityName))
		return syntheticLookup(cityName, lat, lon, domain.FallbackNoUsableFeatures)
	}
	return domain.PoiLookup{Pois: pois, Source: domain.PoiSourceProvider}
}

// GetPois is LookupPois without the provenance.
func (c *Client) GetPois(ctx context.Context, cityName string, lat, lon float64) []domain.ExternalPoi {
	return c.LookupPois(ctx, cityName, lat, lon).Pois
}

func (c *Client) fetchPois(ctx context.Context, lat, lon float64) ([]domain.ExternalPoi, error) {
	q := url.Values{}
	q.Set("categories", strings.Join(poiCategories, ","))
	q.Set("filter", fmt.Sprintf("circle:%f,%f,%d", lon, lat, poiRadiusMeters))
	q.Set("bias", fmt.Sprintf("proximity:%f,%f", lon, lat))
	q.Set("limit", fmt.Sprint(poiLimit))
	q.Set("apiKey", c.places.apiKey)

	var resp placesResponse
	if err := c.places.getJSON(ctx, "/v2/places", q, &resp); err != nil {
		return nil, err
	}

	pois := make([]domain.ExternalPoi, 0, len(resp.Features))
	for _, f := range resp.Features {
		p := f.Properties
		if p == nil || strings.TrimSpace(p.Name) == "" {
			continue
		}
		categories := p.Categories
		if categories == nil {
			categories = []string{}
		}
		pois = append(pois, domain.ExternalPoi{
			PlaceID:    p.PlaceID,
			Name:       p.Name,
			Categories: categories,
			Latitude:   p.Lat,
			Longitude:  p.Lon,
			Address:    p.Formatted,
		})
	}
	return pois, nil
}

func syntheticLookup(cityName string, lat, lon float64, reason string) domain.PoiLookup {
	metrics.PoiFallbacksTotal.WithLabelValues(reason).Inc()
	return domain.PoiLookup{
		Pois:           SyntheticPois(cityName, lat, lon),
		Source:         domain.PoiSourceSynthetic,
		FallbackReason: reason,
	}
}
