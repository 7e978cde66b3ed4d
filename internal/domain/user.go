package domain

import (
	"time"

	"github.com/google/uuid"
)

// Units is the measurement system a user wants weather reported in.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Valid reports whether u is one of the supported systems.
func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// UserProfile holds the optional details a user keeps about themselves.
// UserID is the token subject; there is no separate account record.
// Username and Email are empty until set and unique case-insensitively.
type UserProfile struct {
	UserID         uuid.UUID
	Username       string
	Email          string
	FirstName      string
	LastName       string
	PreferredUnits Units
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultProfile is what a user without a stored profile sees.
func DefaultProfile(userID uuid.UUID) UserProfile {
	return UserProfile{UserID: userID, PreferredUnits: UnitsMetric}
}

// ProfilePatch carries a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	Username       *string
	Email          *string
	FirstName      *string
	LastName       *string
	PreferredUnits *Units
}
