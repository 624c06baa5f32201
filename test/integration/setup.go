package integration

import (
	"context"
	"testing"
	"time"

	"coffee-kart/internal/catalog"
	"coffee-kart/internal/database"
	"coffee-kart/internal/handler"
	"coffee-kart/internal/order"
	"coffee-kart/internal/realtime"
	"coffee-kart/internal/repository"
	"coffee-kart/internal/router"
	"coffee-kart/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	TestAPIKey      = "test-api-key"
	TestShippingFee = int64(30000)
	MenuPath        = "testdata/menu.json"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies migrations and opens a pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()

	if err := database.Migrate(connStr, logger); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, database.PoolSettings{
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 5 * time.Minute,
	}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCatalog loads the test menu from disk and upserts it.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	doc, err := catalog.NewFileLoader(logger).Load(ctx, MenuPath)
	if err != nil {
		t.Fatalf("failed to load test menu: %v", err)
	}

	svc := service.NewCatalogService(repository.NewCatalogRepository(pool, logger), logger)
	if err := svc.Seed(ctx, doc); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
}

// CleanupDB removes per-user data, keeping the seeded catalog.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE order_items, orders, cart_items, notifications, user_profiles")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

// NewTestHandlers wires every handler against pool and an in-memory Redis.
func NewTestHandlers(t *testing.T, pool *pgxpool.Pool) *router.Handlers {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	broker := realtime.NewRedisBroker(client, "test", logger)
	t.Cleanup(func() { _ = broker.Close() })

	catalogRepo := repository.NewCatalogRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	shop := service.ShopSettings{
		ShippingFee: TestShippingFee,
		Bank:        order.BankAccount{BankID: "MB", AccountNo: "0375159350", AccountName: "COFFEE KART"},
	}

	cartService := service.NewCartService(cartRepo, catalogRepo, broker, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	return &router.Handlers{
		Catalog:      handler.NewCatalogHandler(service.NewCatalogService(catalogRepo, logger), logger),
		Cart:         handler.NewCartHandler(cartService, logger),
		CartStream:   handler.NewCartStreamHandler(cartService, "*", logger),
		Order:        handler.NewOrderHandler(service.NewOrderService(orderRepo, cartRepo, notificationRepo, userRepo, notificationService, broker, shop, logger), logger),
		Notification: handler.NewNotificationHandler(notificationService, logger),
		Profile:      handler.NewProfileHandler(service.NewProfileService(userRepo, logger), logger),
	}
}
