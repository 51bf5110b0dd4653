package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget all loaded payments",
		Long:  `Reset clears every sheet and the saved session. This cannot be undone.`,
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}
	cmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")

	return withSession(cmd, false, func(session *app.Session, _ *config.Config) error {
		if !force {
			ok, err := cli.Confirm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), "Forget all loaded payments?")
			if errors.Is(err, cli.ErrInputCancelled) || (err == nil && !ok) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing was changed"))
				return nil
			}
			if err != nil {
				return err
			}
		}

		if !session.ClearSaved(cmd.Context()) {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("Saved session could not be removed"))
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("All payments cleared"))
		return nil
	})
}
