package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop is a single-day visit to a city within a trip.
// Name is derived from the city name and the stop date and is unique within
// the trip (case-insensitive). CityName and RegionName are read-side copies
// joined from the geography tables.
type Stop struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	CityID     uuid.UUID
	CityName   string
	RegionName string
	Name       string
	StopDate   time.Time
	Notes      string
	Pois       []Poi
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewStop is the input to add a stop to a trip.
// RegionName is optional and only needed when the city name is ambiguous.
// CityID, when set, names the city directly and the names are ignored.
type NewStop struct {
	CityID     *uuid.UUID
	CityName   string
	RegionName string
	StopDate   time.Time
	Notes      string
}

// StopPatch carries a partial stop update. Nil fields are left unchanged.
type StopPatch struct {
	StopDate *time.Time
	Notes    *string
}
