package main

import (
	"context"
	"fmt"
	"time"

	"coffee-kart/internal/catalog"
	"coffee-kart/internal/database"
	"coffee-kart/internal/repository"
	"coffee-kart/internal/service"

	"github.com/spf13/cobra"
)

func runSeed(cmd *cobra.Command, args []string) error {
	path := cfg.Catalog.SeedPath
	if len(args) == 1 {
		path = args[0]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	loader := newCatalogLoader(ctx)

	doc, err := loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	catalogService := service.NewCatalogService(repository.NewCatalogRepository(pool, logger), logger)
	if err := catalogService.Seed(ctx, doc); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Info().
		Str("path", path).
		Int("products", len(doc.Products)).
		Int("categories", len(doc.Categories)).
		Msg("catalog seeded")
	return nil
}

// newCatalogLoader reads from S3 when enabled, falling back to the local file system.
func newCatalogLoader(ctx context.Context) catalog.Loader {
	fileLoader := catalog.NewFileLoader(logger)

	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for the catalog (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
}
