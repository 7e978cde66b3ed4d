package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// PoiRepo defines the persistence operations for user-owned POIs.
// Every operation is scoped by owner.
type PoiRepo interface {
	// Create inserts a POI. Returns domain.ErrConflict if the owner already
	// has a POI with that name (case-insensitive).
	Create(ctx context.Context, poi domain.Poi) (domain.Poi, error)

	// UpsertExternal inserts a POI saved from a provider or synthetic place id,
	// or returns the owner's existing POI for that place id.
	UpsertExternal(ctx context.Context, poi domain.Poi) (domain.Poi, error)

	// GetByID returns one POI of the owner.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Poi, error)

	// ListByOwner returns the owner's POIs, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Poi, error)

	// Delete removes one POI of the owner.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// DeleteAllByOwner removes every POI of the owner and returns how many went.
	DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// pgPoiRepo is the Postgres implementation of PoiRepo.
type pgPoiRepo struct {
	db db
}

// NewPoiRepo constructs a PoiRepo backed by the provided db connection.
func NewPoiRepo(db db) PoiRepo {
	return &pgPoiRepo{db: db}
}

const poiColumns = `id, owner_id, external_id, name, description, latitude, longitude, raw_json, created_at`

const poiColumnsAliased = `p.id, p.owner_id, p.external_id, p.name, p.description, p.latitude, p.longitude, p.raw_json, p.created_at`

func poiArgs(poi domain.Poi) pgx.NamedArgs {
	var raw any
	if len(poi.Raw) > 0 {
		raw = []byte(poi.Raw)
	}
	return pgx.NamedArgs{
		"owner_id":    poi.OwnerID,
		"external_id": poi.ExternalID,
		"name":        poi.Name,
		"description": poi.Description,
		"latitude":    poi.Latitude,
		"longitude":   poi.Longitude,
		"raw_json":    raw,
	}
}

func (r *pgPoiRepo) Create(ctx context.Context, poi domain.Poi) (domain.Poi, error) {
	const q = `
		INSERT INTO pois (owner_id, external_id, name, description, latitude, longitude, raw_json)
		VALUES (@owner_id, @external_id, @name, @description, @latitude, @longitude, @raw_json)
		RETURNING ` + poiColumns

	result, err := scanPoi(r.db.QueryRow(ctx, q, poiArgs(poi)))
	if err != nil {
		return domain.Poi{}, fmt.Errorf("repo.PoiRepo.Create: %w", err)
	}
	return result, nil
}

// UpsertExternal relies on the partial unique index over (owner_id, external_id).
// DO UPDATE SET is a no-op write that makes RETURNING fire on conflict too.
func (r *pgPoiRepo) UpsertExternal(ctx context.Context, poi domain.Poi) (domain.Poi, error) {
	const q = `
		INSERT INTO pois (owner_id, external_id, name, description, latitude, longitude, raw_json)
		VALUES (@owner_id, @external_id, @name, @description, @latitude, @longitude, @raw_json)
		ON CONFLICT (owner_id, external_id) WHERE external_id <> ''
		DO UPDATE SET external_id = EXCLUDED.external_id
		RETURNING ` + poiColumns

	result, err := scanPoi(r.db.QueryRow(ctx, q, poiArgs(poi)))
	if err != nil {
		return domain.Poi{}, fmt.Errorf("repo.PoiRepo.UpsertExternal: %w", err)
	}
	return result, nil
}

func (r *pgPoiRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Poi, error) {
	const q = `SELECT ` + poiColumns + ` FROM pois WHERE id = @id AND owner_id = @owner_id`

	result, err := scanPoi(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID}))
	if err != nil {
		return domain.Poi{}, fmt.Errorf("repo.PoiRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPoiRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Poi, error) {
	const q = `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.PoiRepo.ListByOwner: %w", err)
	}
	pois, err := collect(rows, scanPoi)
	if err != nil {
		return nil, fmt.Errorf("repo.PoiRepo.ListByOwner: %w", err)
	}
	return pois, nil
}

func (r *pgPoiRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const q = `DELETE FROM pois WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.PoiRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PoiRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgPoiRepo) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	const q = `DELETE FROM pois WHERE owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("repo.PoiRepo.DeleteAllByOwner: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanPoi maps a poiColumns row into a domain.Poi.
func scanPoi(s scanner) (domain.Poi, error) {
	var (
		p         domain.Poi
		id, owner pgtype.UUID
		lat, lon  pgtype.Float8
		raw       []byte
	)

	err := s.Scan(&id, &owner, &p.ExternalID, &p.Name, &p.Description, &lat, &lon, &raw, &p.CreatedAt)
	if err != nil {
		return domain.Poi{}, translate(err)
	}

	p.ID = uuid.UUID(id.Bytes)
	p.OwnerID = uuid.UUID(owner.Bytes)
	if lat.Valid {
		p.Latitude = &lat.Float64
	}
	if lon.Valid {
		p.Longitude = &lon.Float64
	}
	if len(raw) > 0 {
		p.Raw = raw
	}
	return p, nil
}
