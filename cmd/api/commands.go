package main

import (
	"fmt"

	"coffee-kart/internal/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger zerolog.Logger

	migrateOnStart bool
	downSteps      int

	rootCmd = &cobra.Command{
		Use:           "coffee-kart",
		Short:         "Coffee shop ordering API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger = config.NewLogger(cfg.Logger)
			return nil
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE:  runServe, // Defined in serve.go
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateUpCmd = &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  runMigrateUp, // Defined in migrate.go
	}
	migrateDownCmd = &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE:  runMigrateDown,
	}

	seedCmd = &cobra.Command{
		Use:   "seed [catalog path]",
		Short: "Load a catalog document and upsert it into the database",
		Long: `Loads a gzipped JSON catalog from S3 (when enabled) or the local file system
and writes its categories, sizes, toppings and products to PostgreSQL.
The path defaults to CATALOG_SEED_PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSeed, // Defined in seed.go
	}
)

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}
