package main

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute prepayment used amounts from the application log",
	Example: `  # Every customer
  ledgerctl reconcile

  # One customer
  ledgerctl reconcile --customer 7`,
	RunE: runReconcile,
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute [account-code]",
	Short: "Recompute one account balance, or every balance with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRecompute,
}

var backfillCmd = &cobra.Command{
	Use:   "backfill-postings",
	Short: "Post the ledger entry of every prepayment still missing one",
	RunE:  runBackfill,
}

var validateAccountsCmd = &cobra.Command{
	Use:   "validate-accounts",
	Short: "Check that every configured system account exists and is active",
	RunE:  runValidateAccounts,
}

func init() {
	rootCmd.AddCommand(reconcileCmd, recomputeCmd, backfillCmd, validateAccountsCmd)

	reconcileCmd.Flags().Int64("customer", 0, "Limit reconciliation to one customer id")
	recomputeCmd.Flags().Bool("all", false, "Recompute every account")
	validateAccountsCmd.Flags().Bool("seed", false, "Create missing system accounts before validating")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	customer, _ := cmd.Flags().GetInt64("customer")
	var customerID *int64
	if customer > 0 {
		customerID = &customer
	}

	return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		corrected, err := svc.Prepayment.ReconcilePrepayments(ctx, customerID)
		if err != nil {
			return fmt.Errorf("reconcile prepayments: %w", err)
		}
		slog.Info("Reconciliation finished", slog.Int("corrected", corrected))
		fmt.Fprintf(cmd.OutOrStdout(), "corrected %d prepayment(s)\n", corrected)
		return nil
	})
}

func runRecompute(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if all == (len(args) == 1) {
		return fmt.Errorf("give either an account code or --all")
	}

	return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		if all {
			n, err := svc.Balance.RecomputeAll(ctx)
			if err != nil {
				return fmt.Errorf("recompute all balances: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recomputed %d account(s)\n", n)
			return nil
		}

		account, err := svc.Balance.RecomputeByCode(ctx, args[0])
		if err != nil {
			return fmt.Errorf("recompute %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", account.Code, account.CurrentBalance.StringFixed(2))
		return nil
	})
}

func runBackfill(cmd *cobra.Command, args []string) error {
	return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		posted, failed, err := svc.Prepayment.BackfillPrepaymentPostings(ctx)
		if err != nil {
			return fmt.Errorf("backfill postings: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "posted %d, failed %d\n", posted, failed)
		if failed > 0 {
			return fmt.Errorf("%d prepayment posting(s) failed, see log", failed)
		}
		return nil
	})
}

func runValidateAccounts(cmd *cobra.Command, args []string) error {
	seed, _ := cmd.Flags().GetBool("seed")

	return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		if seed {
			created, err := svc.Account.SeedSystemAccounts(ctx)
			if err != nil {
				return fmt.Errorf("seed system accounts: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d system account(s)\n", created)
		}
		if err := svc.Account.ValidateSystemAccounts(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "system accounts OK")
		return nil
	})
}
