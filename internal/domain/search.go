package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sources a CitySearchResult can come from.
const (
	SourceLocal    = "local"
	SourceGeoapify = "geoapify"
)

// CitySearchResult is one hit of a city search, local or external.
// LocalCityID is nil and Tags is empty for external results.
type CitySearchResult struct {
	PlaceID     string     `json:"place_id"`
	Name        string     `json:"name"`
	Region      string     `json:"region"`
	Country     string     `json:"country"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	LocalCityID *uuid.UUID `json:"local_city_id"`
	Tags        []string   `json:"tags"`
	Source      string     `json:"source"`
}

// SearchHistory is an append-only record of a city search or lookup.
// CityID is set when the query matched a local city.
type SearchHistory struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Query      string
	CityID     *uuid.UUID
	CityName   string
	SearchedAt time.Time
}
