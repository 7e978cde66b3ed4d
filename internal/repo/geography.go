package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

// GeographyRepo is the read-mostly store of countries, regions, cities and tags.
// All name matching is case-insensitive. Returned cities carry their region
// and country names and their tag names.
type GeographyRepo interface {
	// FindCityByID returns domain.ErrNotFound if no city has that id.
	FindCityByID(ctx context.Context, id uuid.UUID) (domain.City, error)

	// FindCitiesByName returns every city whose name equals name.
	FindCitiesByName(ctx context.Context, name string) ([]domain.City, error)

	// FindCityByNameAndRegion returns the city with that name in the named region.
	FindCityByNameAndRegion(ctx context.Context, name, region string) (domain.City, error)

	// FindCitiesByTags returns cities carrying at least one of the tags.
	FindCitiesByTags(ctx context.Context, tags []string) ([]domain.City, error)

	// SearchCitiesByName returns cities whose name contains query.
	SearchCitiesByName(ctx context.Context, query string) ([]domain.City, error)

	// ListCities returns every city ordered by name.
	ListCities(ctx context.Context) ([]domain.City, error)

	// ListCitiesByRegionName returns the cities of every region with that name.
	ListCitiesByRegionName(ctx context.Context, region string) ([]domain.City, error)

	ListCountries(ctx context.Context) ([]domain.Country, error)
	FindCountryByName(ctx context.Context, name string) (domain.Country, error)

	// ListRegions returns all regions, or only those of country when it is non-empty.
	ListRegions(ctx context.Context, country string) ([]domain.Region, error)

	// FindRegionsByName returns regions with that name, optionally within country.
	FindRegionsByName(ctx context.Context, name, country string) ([]domain.Region, error)

	ListTags(ctx context.Context) ([]domain.Tag, error)
}

// pgGeographyRepo is the Postgres implementation of GeographyRepo.
type pgGeographyRepo struct {
	db db
}

// NewGeographyRepo constructs a GeographyRepo backed by the provided db connection.
func NewGeographyRepo(db db) GeographyRepo {
	return &pgGeographyRepo{db: db}
}

// citySelect aggregates tag names per city so one row maps to one domain.City.
// Callers append a WHERE clause and citySelectTail.
const citySelect = `
		SELECT c.id, c.region_id, r.name, co.name, c.name, c.latitude, c.longitude,
		       COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.id IS NOT NULL), '{}') AS tags
		FROM cities c
		JOIN regions r ON r.id = c.region_id
		JOIN countries co ON co.id = r.country_id
		LEFT JOIN city_tags ct ON ct.city_id = c.id
		LEFT JOIN tags t ON t.id = ct.tag_id`

const citySelectTail = `
		GROUP BY c.id, r.name, co.name
		ORDER BY c.name, r.name`

func (r *pgGeographyRepo) FindCityByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	const q = citySelect + `
		WHERE c.id = @id` + citySelectTail

	result, err := scanCity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.GeographyRepo.FindCityByID: %w", err)
	}
	return result, nil
}

func (r *pgGeographyRepo) FindCitiesByName(ctx context.Context, name string) ([]domain.City, error) {
	const q = citySelect + `
		WHERE lower(c.name) = lower(@name)` + citySelectTail

	cities, err := r.queryCities(ctx, q, pgx.NamedArgs{"name": name})
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.FindCitiesByName: %w", err)
	}
	return cities, nil
}

func (r *pgGeographyRepo) FindCityByNameAndRegion(ctx context.Context, name, region string) (domain.City, error) {
	const q = citySelect + `
		WHERE lower(c.name) = lower(@name) AND lower(r.name) = lower(@region)` + citySelectTail + `
		LIMIT 1`

	result, err := scanCity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "region": region}))
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.GeographyRepo.FindCityByNameAndRegion: %w", err)
	}
	return result, nil
}

func (r *pgGeographyRepo) FindCitiesByTags(ctx context.Context, tags []string) ([]domain.City, error) {
	const q = citySelect + `
		WHERE c.id IN (
			SELECT ct2.city_id
			FROM city_tags ct2
			JOIN tags t2 ON t2.id = ct2.tag_id
			WHERE lower(t2.name) = ANY(@tags)
		)` + citySelectTail

	cities, err := r.queryCities(ctx, q, pgx.NamedArgs{"tags": lowerAll(tags)})
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.FindCitiesByTags: %w", err)
	}
	return cities, nil
}

func (r *pgGeographyRepo) SearchCitiesByName(ctx context.Context, query string) ([]domain.City, error) {
	const q = citySelect + `
		WHERE lower(c.name) LIKE @pattern ESCAPE '\'` + citySelectTail

	cities, err := r.queryCities(ctx, q, pgx.NamedArgs{"pattern": containsPattern(query)})
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.SearchCitiesByName: %w", err)
	}
	return cities, nil
}

func (r *pgGeographyRepo) ListCities(ctx context.Context) ([]domain.City, error) {
	const q = citySelect + citySelectTail

	cities, err := r.queryCities(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.ListCities: %w", err)
	}
	return cities, nil
}

func (r *pgGeographyRepo) ListCitiesByRegionName(ctx context.Context, region string) ([]domain.City, error) {
	const q = citySelect + `
		WHERE lower(r.name) = lower(@region)` + citySelectTail

	cities, err := r.queryCities(ctx, q, pgx.NamedArgs{"region": region})
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.ListCitiesByRegionName: %w", err)
	}
	return cities, nil
}

func (r *pgGeographyRepo) ListCountries(ctx context.Context) ([]domain.Country, error) {
	const q = `SELECT id, name, code FROM countries ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.ListCountries: %w", err)
	}
	countries, err := collect(rows, scanCountry)
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.ListCountries: %w", err)
	}
	return countries, nil
}

func (r *pgGeographyRepo) FindCountryByName(ctx context.Context, name string) (domain.Country, error) {
	const q = `SELECT id, name, code FROM countries WHERE lower(name) = lower(@name)`

	result, err := scanCountry(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Country{}, fmt.Errorf("repo.GeographyRepo.FindCountryByName: %w", err)
	}
	return result, nil
}

const regionSelect = `
		SELECT r.id, r.country_id, co.name, r.name
		FROM regions r
		JOIN countries co ON co.id = r.country_id`

func (r *pgGeographyRepo) ListRegions(ctx context.Context, country string) ([]domain.Region, error) {
	const q = regionSelect + `
		WHERE @country = '' OR lower(co.name) = lower(@country)
		ORDER BY r.name, co.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"country": country})
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.ListRegions: %w", err)
	}
	regions, err := collect(rows, scanRegion)
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.ListRegions: %w", err)
	}
	return regions, nil
}

func (r *pgGeographyRepo) FindRegionsByName(ctx context.Context, name, country string) ([]domain.Region, error) {
	const q = regionSelect + `
		WHERE lower(r.name) = lower(@name)
		  AND (@country = '' OR lower(co.name) = lower(@country))
		ORDER BY co.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"name": name, "country": country})
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.FindRegionsByName: %w", err)
	}
	regions, err := collect(rows, scanRegion)
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.FindRegionsByName: %w", err)
	}
	return regions, nil
}

func (r *pgGeographyRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	const q = `SELECT id, name FROM tags ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.ListTags: %w", err)
	}
	tags, err := collect(rows, scanTag)
	if err != nil {
		return nil, fmt.Errorf("repo.GeographyRepo.ListTags: %w", err)
	}
	return tags, nil
}

func (r *pgGeographyRepo) queryCities(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.City, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCity)
}

// scanCity maps a citySelect row into a domain.City.
func scanCity(s scanner) (domain.City, error) {
	var (
		c            domain.City
		id, regionID pgtype.UUID
	)

	err := s.Scan(&id, &regionID, &c.RegionName, &c.CountryName, &c.Name, &c.Latitude, &c.Longitude, &c.Tags)
	if err != nil {
		return domain.City{}, translate(err)
	}

	c.ID = uuid.UUID(id.Bytes)
	c.RegionID = uuid.UUID(regionID.Bytes)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c, nil
}

func scanCountry(s scanner) (domain.Country, error) {
	var (
		c  domain.Country
		id pgtype.UUID
	)
	if err := s.Scan(&id, &c.Name, &c.Code); err != nil {
		return domain.Country{}, translate(err)
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}

func scanRegion(s scanner) (domain.Region, error) {
	var (
		rg        domain.Region
		id, ctyID pgtype.UUID
	)
	if err := s.Scan(&id, &ctyID, &rg.CountryName, &rg.Name); err != nil {
		return domain.Region{}, translate(err)
	}
	rg.ID = uuid.UUID(id.Bytes)
	rg.CountryID = uuid.UUID(ctyID.Bytes)
	return rg, nil
}

func scanTag(s scanner) (domain.Tag, error) {
	var (
		t  domain.Tag
		id pgtype.UUID
	)
	if err := s.Scan(&id, &t.Name); err != nil {
		return domain.Tag{}, translate(err)
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
