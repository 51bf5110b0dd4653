package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/storage"
)

// openSession loads the configuration, opens the database and restores
// the saved session. The returned cleanup closes the database.
func openSession(ctx context.Context) (*app.Session, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}

	if err := db.Migrate(ctx); err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger := slog.Default()
	session := app.New(storage.NewCodec(db, cfg.SnapshotKey, logger), logger)
	if session.Restore(ctx) {
		slog.Debug("restored saved session", "database", db.Path())
	}

	return session, cfg, cleanup, nil
}

// withSession runs fn against the restored session and saves the session
// afterwards when fn succeeds and save is set. A failed save is reported
// as a warning only.
func withSession(cmd *cobra.Command, save bool, fn func(*app.Session, *config.Config) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, cfg, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := fn(session, cfg); err != nil {
		return err
	}
	if save && !session.Save(ctx) {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("Changes were not saved and will be lost on exit"))
	}
	return nil
}

// parseRowNumber converts a 1-based row number argument into a position.
func parseRowNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, common.NewUserError(fmt.Sprintf("invalid row number %q", arg), err)
	}
	return cli.RowPosition(n), nil
}

// printView renders the active sheet's current view.
func printView(cmd *cobra.Command, session *app.Session) {
	sheet := session.ActiveSheet()
	if sheet == "" {
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderSheets(nil, ""))
		return
	}
	res := session.View()
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderView(sheet, session.ViewState().Sort, res))
}
