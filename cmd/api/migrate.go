package main

import (
	"fmt"

	"coffee-kart/internal/database"

	"github.com/spf13/cobra"
)

func runMigrateUp(cmd *cobra.Command, args []string) error {
	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	if err := database.MigrateDown(cfg.Database.ConnectionString(), downSteps, logger); err != nil {
		return fmt.Errorf("failed to roll back: %w", err)
	}
	return nil
}
