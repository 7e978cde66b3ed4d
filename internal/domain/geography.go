package domain

import "github.com/google/uuid"

// Country is the top of the geography hierarchy.
type Country struct {
	ID   uuid.UUID
	Name string
	Code string
}

// Region belongs to exactly one Country.
type Region struct {
	ID          uuid.UUID
	CountryID   uuid.UUID
	CountryName string
	Name        string
}

// City belongs to exactly one Region. City names are not globally unique:
// the same name can exist in several regions or countries.
type City struct {
	ID          uuid.UUID
	RegionID    uuid.UUID
	RegionName  string
	CountryName string
	Name        string
	Latitude    float64
	Longitude   float64
	Tags        []string
}
