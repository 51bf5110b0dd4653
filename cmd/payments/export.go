package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <xlsx|csv>",
		Short: "Export payments to a file",
		Long: `Export writes the loaded payments to a file in the export directory.

  xlsx  every sheet, one tab each, with a TOTAL row (workshop_payments_YYYY-MM-DD.xlsx)
  csv   the active sheet only (<sheet>.csv)`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(app.ExportXLSX), string(app.ExportCSV)},
		RunE:      runExport,
	}
	cmd.Flags().String("dir", "", "Directory to write to (default from config, usually the current directory)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := app.ParseExportFormat(args[0])
	if err != nil {
		return err
	}

	return withSession(cmd, false, func(session *app.Session, cfg *config.Config) error {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.ExportDir
		}

		path, err := session.ExportTo(config.ExpandPath(dir), format, time.Now())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported to %s", path)))
		return nil
	})
}
