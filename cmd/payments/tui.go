package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/tui"
	"github.com/Veraticus/workshop-payments/internal/tui/themes"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit payments interactively",
		Long: `Tui opens a full-screen view of the loaded payments. Changes are saved
as you make them. Press ? inside for the key bindings.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin)")
	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	theme, _ := cmd.Flags().GetString("theme")

	return withSession(cmd, true, func(session *app.Session, cfg *config.Config) error {
		return tui.Run(cmd.Context(),
			tui.WithSession(session),
			tui.WithTheme(themes.ByName(theme)),
			tui.WithExportDir(config.ExpandPath(cfg.ExportDir)),
		)
	})
}
