package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// Every lookup is scoped by owner: a trip owned by someone else is reported
// as domain.ErrNotFound, exactly like a trip that does not exist.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record.
	// Returns domain.ErrConflict if the owner already has a trip with that name.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByNameAndOwner finds a trip by name (case-insensitive) for one owner.
	// Stops are not loaded.
	GetByNameAndOwner(ctx context.Context, name string, ownerID uuid.UUID) (domain.Trip, error)

	// ListByOwner returns one page of the owner's trips ordered by start_date
	// descending, and the owner's total trip count.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites name and dates of an existing trip.
	// Returns domain.ErrNotFound if the trip does not exist for that owner.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip; its stops and stop/POI links go with it.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, name, start_date, end_date, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, name, start_date, end_date)
		VALUES (@owner_id, @name, @start_date, @end_date)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"owner_id":   trip.OwnerID,
		"name":       trip.Name,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByNameAndOwner(ctx context.Context, name string, ownerID uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE lower(name) = lower(@name) AND owner_id = @owner_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "owner_id": ownerID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByNameAndOwner: %w", err)
	}
	return result, nil
}

// ListByOwner counts separately so the total holds on pages past the end.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips WHERE owner_id = @owner_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: count: %w", err)
	}

	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY start_date DESC, lower(name)
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name       = @name,
		    start_date = @start_date,
		    end_date   = @end_date,
		    updated_at = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":         trip.ID,
		"owner_id":   trip.OwnerID,
		"name":       trip.Name,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id, owner  pgtype.UUID
		start, end pgtype.Date
	)

	if err := s.Scan(&id, &owner, &t.Name, &start, &end, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Trip{}, translate(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(owner.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	return t, nil
}
