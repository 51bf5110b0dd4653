package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/workbook"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import payments from an XLSX, CSV or OFX file",
		Long: `Import replaces all loaded sheets with the contents of a dataset file.

Each worksheet of an .xlsx file becomes a sheet; a .csv file becomes one
sheet named after the file; an .ofx or .qfx statement becomes one sheet per
account. Column labels such as "Paid To", "Description" or "Cost" are
recognized and mapped onto who, why and how much. Rows with nothing in
them are skipped. The first sheet becomes active.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	return withSession(cmd, true, func(session *app.Session, _ *config.Config) error {
		path := config.ExpandPath(args[0])

		ticket := session.BeginIngest()
		raw, err := workbook.DecodeFile(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		if err := session.CompleteIngest(ticket, raw); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d sheets from %s", len(raw.Names), path)))
		fmt.Fprint(out, cli.RenderSheets(session.Summaries(), session.ActiveSheet()))
		return nil
	})
}
