package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/metrics"
)

// cachedGeographyRepo decorates a GeographyRepo with an in-process TTL cache.
// Geography is reference data seeded by migrations, so entries are only
// invalidated by expiry. Errors, including domain.ErrNotFound, are never cached.
// Substring search is passed through because its key space is unbounded.
type cachedGeographyRepo struct {
	next  GeographyRepo
	cache *cache.Cache
}

// NewCachedGeographyRepo wraps next with a cache whose entries live for ttl.
func NewCachedGeographyRepo(next GeographyRepo, ttl time.Duration) GeographyRepo {
	return &cachedGeographyRepo{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

const geographyCacheName = "geography"

func cached[T any](c *cache.Cache, key string, load func() (T, error)) (T, error) {
	if v, found := c.Get(key); found {
		metrics.CacheHits.WithLabelValues(geographyCacheName).Inc()
		return v.(T), nil
	}
	metrics.CacheMisses.WithLabelValues(geographyCacheName).Inc()

	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v, cache.DefaultExpiration)
	return v, nil
}

func key(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}

func (r *cachedGeographyRepo) FindCityByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	return cached(r.cache, key("city", id.String()), func() (domain.City, error) {
		return r.next.FindCityByID(ctx, id)
	})
}

func (r *cachedGeographyRepo) FindCitiesByName(ctx context.Context, name string) ([]domain.City, error) {
	return cached(r.cache, key("cities-by-name", name), func() ([]domain.City, error) {
		return r.next.FindCitiesByName(ctx, name)
	})
}

func (r *cachedGeographyRepo) FindCityByNameAndRegion(ctx context.Context, name, region string) (domain.City, error) {
	return cached(r.cache, key("city-by-name-region", name, region), func() (domain.City, error) {
		return r.next.FindCityByNameAndRegion(ctx, name, region)
	})
}

func (r *cachedGeographyRepo) FindCitiesByTags(ctx context.Context, tags []string) ([]domain.City, error) {
	return cached(r.cache, key(append([]string{"cities-by-tags"}, lowerAll(tags)...)...), func() ([]domain.City, error) {
		return r.next.FindCitiesByTags(ctx, tags)
	})
}

func (r *cachedGeographyRepo) SearchCitiesByName(ctx context.Context, query string) ([]domain.City, error) {
	return r.next.SearchCitiesByName(ctx, query)
}

func (r *cachedGeographyRepo) ListCities(ctx context.Context) ([]domain.City, error) {
	return cached(r.cache, key("cities"), func() ([]domain.City, error) {
		return r.next.ListCities(ctx)
	})
}

func (r *cachedGeographyRepo) ListCitiesByRegionName(ctx context.Context, region string) ([]domain.City, error) {
	return cached(r.cache, key("cities-by-region", region), func() ([]domain.City, error) {
		return r.next.ListCitiesByRegionName(ctx, region)
	})
}

func (r *cachedGeographyRepo) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return cached(r.cache, key("countries"), func() ([]domain.Country, error) {
		return r.next.ListCountries(ctx)
	})
}

func (r *cachedGeographyRepo) FindCountryByName(ctx context.Context, name string) (domain.Country, error) {
	return cached(r.cache, key("country", name), func() (domain.Country, error) {
		return r.next.FindCountryByName(ctx, name)
	})
}

func (r *cachedGeographyRepo) ListRegions(ctx context.Context, country string) ([]domain.Region, error) {
	return cached(r.cache, key("regions", country), func() ([]domain.Region, error) {
		return r.next.ListRegions(ctx, country)
	})
}

func (r *cachedGeographyRepo) FindRegionsByName(ctx context.Context, name, country string) ([]domain.Region, error) {
	return cached(r.cache, key("regions-by-name", name, country), func() ([]domain.Region, error) {
		return r.next.FindRegionsByName(ctx, name, country)
	})
}

func (r *cachedGeographyRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return cached(r.cache, key("tags"), func() ([]domain.Tag, error) {
		return r.next.ListTags(ctx)
	})
}
