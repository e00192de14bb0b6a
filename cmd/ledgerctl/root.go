package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/core/services"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/SscSPs/backoffice_ledger/internal/platform/lock"
	"github.com/SscSPs/backoffice_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/backoffice_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Maintenance commands for the backoffice ledger",
	Long: `ledgerctl runs the ledger's maintenance operations against the configured database:
balance recomputation, prepayment reconciliation and backfill, fiscal year
transitions, system account checks and schema migrations.

Configuration is read from the environment (and .env) exactly like the server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("user", "ledgerctl", "User id recorded on changes made by this run")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Minute, "Abort the command after this long")
}

// withServices loads config, connects, and hands the service container to fn.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *portssvc.ServiceContainer) error) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)

	var locker lock.Locker = lock.NewLocalLocker(5 * time.Second)
	if cfg.RedisAddr != "" {
		client, err := lock.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client, cfg.LockTTL, 5*time.Second)
	}

	svc := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), locker)
	return fn(ctx, svc)
}

func actingUser(cmd *cobra.Command) string {
	user, _ := cmd.Flags().GetString("user")
	return user
}
