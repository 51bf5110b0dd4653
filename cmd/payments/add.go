package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/normalize"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <who> <why> <amount>",
		Short: "Add a payment to the active sheet",
		Long: `Add appends a payment to the end of the active sheet. Who and why are
required. An amount that is not a number is recorded as 0.`,
		Args: cobra.ExactArgs(3),
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	who, why, amount := args[0], args[1], normalize.ParseAmount(args[2])

	return withSession(cmd, true, func(session *app.Session, _ *config.Config) error {
		if err := session.Append(who, why, amount); err != nil {
			return fmt.Errorf("failed to add payment: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s to %s", cli.FormatAmount(amount), session.ActiveSheet())))
		printView(cmd, session)
		return nil
	})
}
