package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Poi is a user-owned point of interest. ExternalID is the provider place id
// (or a synthetic id) the POI was saved from; it is empty for hand-entered POIs.
// Raw keeps the provider payload as-is.
type Poi struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	ExternalID  string
	Name        string
	Description string
	Latitude    *float64
	Longitude   *float64
	Raw         json.RawMessage
	CreatedAt   time.Time
}

// ExternalPoi is an ephemeral point of interest, either returned by the places
// provider or synthesized. It is never stored on its own.
type ExternalPoi struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	Categories  []string `json:"categories"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Address     string   `json:"address,omitempty"`
	Description string   `json:"description,omitempty"`
	IsSynthetic bool     `json:"is_synthetic"`
}

// PoiSource names the step of the POI lookup chain that produced a list.
type PoiSource string

const (
	PoiSourceProvider  PoiSource = "provider"
	PoiSourceSynthetic PoiSource = "synthetic"
)

// Reasons recorded when the POI lookup falls back to synthetic data.
const (
	FallbackProviderError    = "provider_error"
	FallbackNoUsableFeatures = "no_usable_features"
)

// PoiLookup is the outcome of a POI lookup. Pois is never empty.
// FallbackReason is set only when Source is PoiSourceSynthetic.
type PoiLookup struct {
	Pois           []ExternalPoi
	Source         PoiSource
	FallbackReason string
}
