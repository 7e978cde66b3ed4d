package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// Request and response bodies. Dates travel as "2006-01-02" strings.

type CreateTripRequest struct {
	Name      string             `json:"name"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

// UpdateTripRequest is a partial update: omitted fields are left unchanged.
type UpdateTripRequest struct {
	Name      *string             `json:"name"`
	StartDate *openapi_types.Date `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date"`
}

// AddStopRequest names the city either by city_id or by city and region.
type AddStopRequest struct {
	CityID   *uuid.UUID         `json:"city_id"`
	City     string             `json:"city"`
	Region   string             `json:"region"`
	StopDate openapi_types.Date `json:"stop_date"`
	Notes    string             `json:"notes"`
}

type UpdateStopRequest struct {
	StopDate *openapi_types.Date `json:"stop_date"`
	Notes    *string             `json:"notes"`
}

type CreatePoiRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// UpdateProfileRequest is a partial update of the caller's profile.
type UpdateProfileRequest struct {
	Username       *string       `json:"username"`
	Email          *string       `json:"email"`
	FirstName      *string       `json:"first_name"`
	LastName       *string       `json:"last_name"`
	PreferredUnits *domain.Units `json:"preferred_units"`
}

// User is the caller as seen by the API. created_at is omitted until the
// profile has been saved once.
type User struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Profile   Profile    `json:"profile"`
}

type Profile struct {
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	PreferredUnits domain.Units `json:"preferred_units"`
}

type Trip struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Stops     []Stop             `json:"stops"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type Stop struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	CityID   uuid.UUID          `json:"city_id"`
	City     string             `json:"city"`
	Region   string             `json:"region"`
	StopDate openapi_types.Date `json:"stop_date"`
	Notes    string             `json:"notes"`
	Pois     []Poi              `json:"pois"`
}

type Poi struct {
	ID          uuid.UUID `json:"id"`
	ExternalID  string    `json:"external_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}

type Country struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

type Region struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
}

type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type City struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Tags      []string  `json:"tags"`
}

// PoiList is a city's points of interest. Source tells whether the provider
// answered or the list was synthesized.
type PoiList struct {
	City           string               `json:"city"`
	Pois           []domain.ExternalPoi `json:"pois"`
	Source         domain.PoiSource     `json:"source"`
	FallbackReason string               `json:"fallback_reason,omitempty"`
}

type CityOverview struct {
	City    City            `json:"city"`
	Weather *domain.Weather `json:"weather"`
	Pois    PoiList         `json:"pois"`
}

// CitySearchResult carries its own json tags in the domain package.
type CitySearchResult = domain.CitySearchResult

type SearchHistoryEntry struct {
	ID         uuid.UUID  `json:"id"`
	Query      string     `json:"query"`
	CityID     *uuid.UUID `json:"city_id"`
	CityName   string     `json:"city_name,omitempty"`
	SearchedAt time.Time  `json:"searched_at"`
}

// ListResponse wraps a non-paginated collection.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}

// PageResponse wraps one page of a paginated collection.
type PageResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// --- mapping helpers --------------------------------------------------------

// mapAll converts a domain slice into response DTOs; the result is never nil
// so empty lists encode as [].
func mapAll[D, R any](in []D, f func(D) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID:        t.ID,
		Name:      t.Name,
		StartDate: openapi_types.Date{Time: t.StartDate},
		EndDate:   openapi_types.Date{Time: t.EndDate},
		Stops:     mapAll(t.Stops, stopToResponse),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func stopToResponse(s domain.Stop) Stop {
	return Stop{
		ID:       s.ID,
		Name:     s.Name,
		CityID:   s.CityID,
		City:     s.CityName,
		Region:   s.RegionName,
		StopDate: openapi_types.Date{Time: s.StopDate},
		Notes:    s.Notes,
		Pois:     mapAll(s.Pois, poiToResponse),
	}
}

func poiToResponse(p domain.Poi) Poi {
	return Poi{
		ID:          p.ID,
		ExternalID:  p.ExternalID,
		Name:        p.Name,
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		CreatedAt:   p.CreatedAt,
	}
}

func userToResponse(p domain.UserProfile) User {
	u := User{
		ID: p.UserID,
		Profile: Profile{
			Username:       p.Username,
			Email:          p.Email,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PreferredUnits: p.PreferredUnits,
		},
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		u.CreatedAt = &created
	}
	return u
}

func countryToResponse(c domain.Country) Country {
	return Country{ID: c.ID, Name: c.Name, Code: c.Code}
}

func regionToResponse(r domain.Region) Region {
	return Region{ID: r.ID, Name: r.Name, Country: r.CountryName}
}

func tagToResponse(t domain.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name}
}

func cityToResponse(c domain.City) City {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return City{
		ID:        c.ID,
		Name:      c.Name,
		Region:    c.RegionName,
		Country:   c.CountryName,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Tags:      tags,
	}
}

func poiListToResponse(city string, l domain.PoiLookup) PoiList {
	pois := l.Pois
	if pois == nil {
		pois = []domain.ExternalPoi{}
	}
	return PoiList{City: city, Pois: pois, Source: l.Source, FallbackReason: l.FallbackReason}
}

func historyToResponse(h domain.SearchHistory) SearchHistoryEntry {
	return SearchHistoryEntry{
		ID:         h.ID,
		Query:      h.Query,
		CityID:     h.CityID,
		CityName:   h.CityName,
		SearchedAt: h.SearchedAt,
	}
}

func pageResponse[D, R any](p domain.Page[D], params domain.PaginationParams, f func(D) R) PageResponse[R] {
	return PageResponse[R]{
		Data:       mapAll(p.Items, f),
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: p.Total},
	}
}
