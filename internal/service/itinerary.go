package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// dateLayout is the ISO date format used in stop names and exports.
const dateLayout = "2006-01-02"

var whitespaceRun = regexp.MustCompile(`\s+`)

// DeriveStopName builds the identity of a stop from its city and date,
// e.g. ("San Marino", 2024-06-05) -> "san_marino_2024-06-05".
func DeriveStopName(cityName string, date time.Time) string {
	slug := whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(cityName)), "_")
	return slug + "_" + date.Format(dateLayout)
}

// dateOnly drops the clock and zone from t, keeping its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateTripName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: trip name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(name) > domain.MaxTripNameLength {
		return "", fmt.Errorf("%w: trip name must be at most %d characters", domain.ErrValidation, domain.MaxTripNameLength)
	}
	return name, nil
}

func validateTripDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start date and end date are required", domain.ErrValidation)
	}
	if start.After(end) {
		return fmt.Errorf("%w: Start date must be before or equal to end date", domain.ErrValidation)
	}
	return nil
}

func validateStopDate(trip domain.Trip, date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: stop date is required", domain.ErrValidation)
	}
	if !trip.Covers(date) {
		return fmt.Errorf("%w: Stop date must be within trip date range", domain.ErrValidation)
	}
	return nil
}

// stopConflict is returned when a stop with the same derived name already exists.
func stopConflict(cityName string, date time.Time) error {
	return fmt.Errorf("%w: A stop for %s on %s already exists in this trip",
		domain.ErrConflict, cityName, date.Format(dateLayout))
}
