package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/SscSPs/backoffice_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply pending migrations, or revert the last one with down",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := database.MigrateUp
		if len(args) == 1 {
			direction = database.MigrateDirection(args[0])
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return database.RunMigrations(slog.Default(), cfg.DatabaseURL, cfg.MigrationsPath, direction)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
