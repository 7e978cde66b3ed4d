// Package domain contains the core data types for the travel planner.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (repo, service, external, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTripNameLength bounds the length of a trip name in characters.
const MaxTripNameLength = 150

// Trip is a user-owned itinerary between two dates.
// Stops are ordered by stop date ascending and are only populated by reads
// that load the full itinerary.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Stops     []Stop    `json:"stops"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TripPatch carries a partial trip update. Nil fields are left unchanged.
type TripPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Covers reports whether d falls inside the trip range, bounds included.
func (t Trip) Covers(d time.Time) bool {
	return !d.Before(t.StartDate) && !d.After(t.EndDate)
}
