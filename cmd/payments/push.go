package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/sheets"
)

func pushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push every sheet to Google Sheets",
		Long: `Push writes every sheet to a Google Sheets spreadsheet, one tab per
sheet with a TOTAL row. Existing tabs with the same name are replaced.

Authentication uses either OAuth2 credentials:
  GOOGLE_SHEETS_CLIENT_ID, GOOGLE_SHEETS_CLIENT_SECRET, GOOGLE_SHEETS_REFRESH_TOKEN
or a service account:
  GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH

Set GOOGLE_SHEETS_SPREADSHEET_ID to update an existing spreadsheet, or
GOOGLE_SHEETS_SPREADSHEET_NAME to name a new one.`,
		Args: cobra.NoArgs,
		RunE: runPush,
	}
}

func runPush(cmd *cobra.Command, _ []string) error {
	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return err
	}

	return withSession(cmd, false, func(session *app.Session, _ *config.Config) error {
		ctx := cmd.Context()

		interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "push")
		ctx = interruptHandler.HandleInterrupts(ctx, true)
		defer interruptHandler.Stop()

		writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to create sheets writer: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Pushing to Google Sheets..."))
		id, err := session.Push(ctx, writer.WithProgress(cmd.ErrOrStderr()))
		if err != nil {
			if interruptHandler.WasInterrupted() {
				return nil
			}
			return fmt.Errorf("push failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Pushed all sheets"))
		fmt.Fprintf(cmd.OutOrStdout(), "https://docs.google.com/spreadsheets/d/%s\n", id)
		return nil
	})
}
