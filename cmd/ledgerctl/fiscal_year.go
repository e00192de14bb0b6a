package main

import (
	"context"
	"fmt"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/spf13/cobra"
)

var fiscalYearCmd = &cobra.Command{
	Use:     "fiscal-year",
	Aliases: []string{"fy"},
	Short:   "Inspect and transition fiscal years",
}

var fiscalYearListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fiscal years",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			years, err := svc.FiscalYear.List(ctx)
			if err != nil {
				return err
			}
			for _, fy := range years {
				state := "open"
				switch {
				case fy.IsClosed:
					state = "closed"
				case fy.IsCurrent:
					state = "current"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s..%s\t%s\n",
					fy.FiscalYearID, fy.Code, fy.StartDate.Format("2006-01-02"), fy.EndDate.Format("2006-01-02"), state)
			}
			return nil
		})
	},
}

var fiscalYearSetCurrentCmd = &cobra.Command{
	Use:   "set-current <fiscal-year-id>",
	Short: "Make a fiscal year the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			fy, err := svc.FiscalYear.SetCurrent(ctx, args[0], actingUser(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now current\n", fy.Code)
			return nil
		})
	},
}

var fiscalYearCloseCmd = &cobra.Command{
	Use:   "close <fiscal-year-id>",
	Short: "Close a fiscal year (irreversible)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			fy, err := svc.FiscalYear.Close(ctx, args[0], actingUser(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s closed\n", fy.Code)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(fiscalYearCmd)
	fiscalYearCmd.AddCommand(fiscalYearListCmd, fiscalYearSetCurrentCmd, fiscalYearCloseCmd)
}
