package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// StopRepo defines the persistence operations for Stops and the stop_pois join table.
// Stops are always addressed through their parent trip id.
type StopRepo interface {
	// Create inserts a stop and returns it with its city and region names.
	// Returns domain.ErrConflict if the trip already has a stop with that name.
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// GetByName finds a stop of a trip by name (case-insensitive).
	GetByName(ctx context.Context, tripID uuid.UUID, name string) (domain.Stop, error)

	// ListByTrip returns the stops of a trip ordered by stop_date ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// ListByTrips returns the stops of several trips keyed by trip id.
	ListByTrips(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.Stop, error)

	// Update overwrites name, date and notes of a stop.
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// Delete removes a stop. Returns domain.ErrNotFound if it is not part of the trip.
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error

	// AttachPoi links a POI to a stop. Idempotent: no error if already linked.
	AttachPoi(ctx context.Context, stopID, poiID uuid.UUID) error

	// DetachPoi unlinks a POI from a stop.
	// Returns domain.ErrNotFound if the POI is not linked to the stop.
	DetachPoi(ctx context.Context, stopID, poiID uuid.UUID) error

	// ListPois returns the POIs linked to a stop ordered by name.
	ListPois(ctx context.Context, stopID uuid.UUID) ([]domain.Poi, error)
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

// stopSelect projects a stop row (aliased s) joined with its city and region.
const stopSelect = `
		SELECT s.id, s.trip_id, s.city_id, c.name, r.name, s.stop_name, s.stop_date,
		       s.notes, s.created_at, s.updated_at`

const stopJoins = `
		JOIN cities c ON c.id = s.city_id
		JOIN regions r ON r.id = c.region_id`

// Create inserts through a CTE so the returned row carries the joined city
// and region names without a second round trip.
func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		WITH s AS (
			INSERT INTO stops (trip_id, city_id, stop_name, stop_date, notes)
			VALUES (@trip_id, @city_id, @stop_name, @stop_date, @notes)
			RETURNING *
		)` + stopSelect + `
		FROM s` + stopJoins

	args := pgx.NamedArgs{
		"trip_id":   stop.TripID,
		"city_id":   stop.CityID,
		"stop_name": stop.Name,
		"stop_date": stop.StopDate,
		"notes":     stop.Notes,
	}

	result, err := scanStop(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) GetByName(ctx context.Context, tripID uuid.UUID, name string) (domain.Stop, error) {
	const q = stopSelect + `
		FROM stops s` + stopJoins + `
		WHERE s.trip_id = @trip_id AND lower(s.stop_name) = lower(@name)`

	result, err := scanStop(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "name": name}))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByName: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = stopSelect + `
		FROM stops s` + stopJoins + `
		WHERE s.trip_id = @trip_id
		ORDER BY s.stop_date, s.stop_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: %w", err)
	}
	stops, err := collect(rows, scanStop)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: %w", err)
	}
	return stops, nil
}

func (r *pgStopRepo) ListByTrips(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.Stop, error) {
	out := make(map[uuid.UUID][]domain.Stop, len(tripIDs))
	if len(tripIDs) == 0 {
		return out, nil
	}

	const q = stopSelect + `
		FROM stops s` + stopJoins + `
		WHERE s.trip_id = ANY(@trip_ids)
		ORDER BY s.trip_id, s.stop_date, s.stop_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": tripIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrips: %w", err)
	}
	stops, err := collect(rows, scanStop)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrips: %w", err)
	}
	for _, s := range stops {
		out[s.TripID] = append(out[s.TripID], s)
	}
	return out, nil
}

func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		WITH s AS (
			UPDATE stops
			SET stop_name  = @stop_name,
			    stop_date  = @stop_date,
			    notes      = @notes,
			    updated_at = now()
			WHERE id = @id AND trip_id = @trip_id
			RETURNING *
		)` + stopSelect + `
		FROM s` + stopJoins

	args := pgx.NamedArgs{
		"id":        stop.ID,
		"trip_id":   stop.TripID,
		"stop_name": stop.Name,
		"stop_date": stop.StopDate,
		"notes":     stop.Notes,
	}

	result, err := scanStop(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	const q = `DELETE FROM stops WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgStopRepo) AttachPoi(ctx context.Context, stopID, poiID uuid.UUID) error {
	const q = `
		INSERT INTO stop_pois (stop_id, poi_id)
		VALUES (@stop_id, @poi_id)
		ON CONFLICT (stop_id, poi_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"stop_id": stopID, "poi_id": poiID}); err != nil {
		return fmt.Errorf("repo.StopRepo.AttachPoi: %w", translate(err))
	}
	return nil
}

func (r *pgStopRepo) DetachPoi(ctx context.Context, stopID, poiID uuid.UUID) error {
	const q = `DELETE FROM stop_pois WHERE stop_id = @stop_id AND poi_id = @poi_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"stop_id": stopID, "poi_id": poiID})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.DetachPoi: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.DetachPoi: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgStopRepo) ListPois(ctx context.Context, stopID uuid.UUID) ([]domain.Poi, error) {
	const q = `
		SELECT ` + poiColumnsAliased + `
		FROM pois p
		JOIN stop_pois sp ON sp.poi_id = p.id
		WHERE sp.stop_id = @stop_id
		ORDER BY lower(p.name)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"stop_id": stopID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListPois: %w", err)
	}
	pois, err := collect(rows, scanPoi)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListPois: %w", err)
	}
	return pois, nil
}

// scanStop maps a stopSelect row into a domain.Stop.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st                 domain.Stop
		id, tripID, cityID pgtype.UUID
		date               pgtype.Date
	)

	err := s.Scan(&id, &tripID, &cityID, &st.CityName, &st.RegionName, &st.Name, &date,
		&st.Notes, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return domain.Stop{}, translate(err)
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	st.CityID = uuid.UUID(cityID.Bytes)
	st.StopDate = date.Time
	return st, nil
}
