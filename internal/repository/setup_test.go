package repository

import (
	"context"
	"testing"
	"time"

	"coffee-kart/internal/database"
	"coffee-kart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a migrated PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(connStr, zerolog.Nop()))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// testCatalog is a small menu shared by the repository tests.
func testCatalog() *model.Catalog {
	return &model.Catalog{
		Categories: []model.Category{
			{ID: "coffee", Name: "Cà phê", Position: 1},
			{ID: "tea", Name: "Trà", Position: 2},
		},
		Products: []model.Product{
			{ID: "P001", Name: "Cà phê sữa đá", BasePrice: 25000, CategoryID: "coffee"},
			{ID: "P002", Name: "Bạc xỉu", BasePrice: 29000, CategoryID: "coffee"},
			{ID: "P003", Name: "Trà đào", BasePrice: 35000, CategoryID: "tea"},
		},
		Sizes: []model.SizeOption{
			{ID: "S", Label: "S", Surcharge: 0},
			{ID: "M", Label: "M", Surcharge: 5000},
			{ID: "L", Label: "L", Surcharge: 10000},
		},
		Toppings: []model.ToppingOption{
			{ID: "1", Label: "Trân châu", Surcharge: 5000},
			{ID: "2", Label: "Thạch", Surcharge: 5000},
		},
	}
}

// now returns the current time at the precision PostgreSQL stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
