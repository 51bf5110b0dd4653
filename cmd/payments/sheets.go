package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
)

func sheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List loaded sheets with their totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, false, func(session *app.Session, _ *config.Config) error {
				fmt.Fprint(cmd.OutOrStdout(), cli.RenderSheets(session.Summaries(), session.ActiveSheet()))
				return nil
			})
		},
	}
}

func useCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <sheet>",
		Short: "Switch the active sheet",
		Long: `Use makes another sheet active. The person filter is cleared unless
--keep-filter is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runUse,
	}
	cmd.Flags().Bool("keep-filter", false, "Keep the current person filter")
	return cmd
}

func runUse(cmd *cobra.Command, args []string) error {
	keep, _ := cmd.Flags().GetBool("keep-filter")
	return withSession(cmd, true, func(session *app.Session, _ *config.Config) error {
		if err := session.SetActiveSheet(args[0], keep); err != nil {
			return fmt.Errorf("failed to switch sheet: %w", err)
		}
		printView(cmd, session)
		return nil
	})
}
