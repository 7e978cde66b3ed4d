package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/testutil"
)

// newTestTx returns a per-test transaction that is rolled back afterwards.
// Requires TEST_DATABASE_URL; the test is skipped otherwise.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.BeginTx(t)
}

// geo holds the ids of the geography rows seeded by migrations.
type geo struct {
	italy, usa               uuid.UUID
	lazio, illinois, ohio    uuid.UUID
	roma, springIL, springOH uuid.UUID
}

// seedGeography looks up the seeded rows the tests rely on:
// Roma (Lazio, Italy) tagged art+history, and an untagged Springfield in both
// Illinois and Ohio (United States).
func seedGeography(t *testing.T, tx pgx.Tx) geo {
	t.Helper()
	ctx := context.Background()

	lookup := func(q string, args ...any) uuid.UUID {
		t.Helper()
		var id uuid.UUID
		require.NoError(t, tx.QueryRow(ctx, q, args...).Scan(&id), "seeded row for %v", args)
		return id
	}
	country := func(name string) uuid.UUID {
		return lookup(`SELECT id FROM countries WHERE name = $1`, name)
	}
	region := func(name string) uuid.UUID {
		return lookup(`SELECT id FROM regions WHERE name = $1`, name)
	}
	city := func(name string, regionID uuid.UUID) uuid.UUID {
		return lookup(`SELECT id FROM cities WHERE name = $1 AND region_id = $2`, name, regionID)
	}

	var g geo
	g.italy = country("Italy")
	g.usa = country("United States")
	g.lazio = region("Lazio")
	g.illinois = region("Illinois")
	g.ohio = region("Ohio")
	g.roma = city("Roma", g.lazio)
	g.springIL = city("Springfield", g.illinois)
	g.springOH = city("Springfield", g.ohio)
	return g
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		OwnerID:   owner,
		Name:      "Italy 2024",
		StartDate: date(2024, 6, 1),
		EndDate:   date(2024, 6, 10),
	}
}
