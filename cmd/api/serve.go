package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffee-kart/internal/database"
	"coffee-kart/internal/handler"
	"coffee-kart/internal/order"
	"coffee-kart/internal/realtime"
	"coffee-kart/internal/repository"
	"coffee-kart/internal/router"
	"coffee-kart/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, args []string) error {
	logger.Info().Msg("starting coffee-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if migrateOnStart {
		if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Cart snapshots fan out through Redis so every API instance can serve the stream.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().
			Err(err).
			Str("addr", cfg.Redis.Addr).
			Msg("redis unreachable, cart streaming will be unavailable until it recovers")
	}

	broker := realtime.NewRedisBroker(redisClient, "coffee-kart", logger)
	defer broker.Close()

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize services
	shop := service.ShopSettings{
		ShippingFee: cfg.Shop.ShippingFee,
		Bank: order.BankAccount{
			BankID:      cfg.Shop.BankID,
			AccountNo:   cfg.Shop.BankAccountNo,
			AccountName: cfg.Shop.BankAccountName,
		},
	}

	catalogService := service.NewCatalogService(catalogRepo, logger)
	cartService := service.NewCartService(cartRepo, catalogRepo, broker, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, notificationRepo, userRepo, notificationService, broker, shop, logger)
	profileService := service.NewProfileService(userRepo, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Catalog:      handler.NewCatalogHandler(catalogService, logger),
		Cart:         handler.NewCartHandler(cartService, logger),
		CartStream:   handler.NewCartStreamHandler(cartService, "*", logger),
		Order:        handler.NewOrderHandler(orderService, logger),
		Notification: handler.NewNotificationHandler(notificationService, logger),
		Profile:      handler.NewProfileHandler(profileService, logger),
	}, pool.Ping, cfg.Auth.APIKey, logger)

	// WriteTimeout is left unset: the cart stream holds its connection open and
	// manages its own write deadlines.
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Open cart streams are hijacked connections that Shutdown does not wait for;
		// closing the broker ends their subscriptions.
		if err := broker.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close cart broker")
		}

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
