package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/normalize"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <row>",
		Short: "Edit a payment on the active sheet",
		Long: `Edit changes the payment with the given row number, as shown by
"payments show". Only the fields passed as flags change.`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().String("who", "", "Who was paid")
	cmd.Flags().String("why", "", "What the payment was for")
	cmd.Flags().String("amount", "", "How much was paid")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	position, err := parseRowNumber(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("who") && !flags.Changed("why") && !flags.Changed("amount") {
		return fmt.Errorf("nothing to change: pass --who, --why or --amount")
	}

	return withSession(cmd, true, func(session *app.Session, _ *config.Config) error {
		row, err := session.BeginEdit(position)
		if err != nil {
			return fmt.Errorf("failed to edit row %s: %w", args[0], err)
		}

		who, why, amount := row.Who, row.Why, row.Amount
		if flags.Changed("who") {
			who, _ = flags.GetString("who")
		}
		if flags.Changed("why") {
			why, _ = flags.GetString("why")
		}
		if flags.Changed("amount") {
			s, _ := flags.GetString("amount")
			amount = normalize.ParseAmount(s)
		}

		if err := session.CommitEdit(who, why, amount); err != nil {
			session.CancelEdit()
			return fmt.Errorf("failed to edit row %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated row %s", args[0])))
		printView(cmd, session)
		return nil
	})
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <row>",
		Aliases: []string{"rm"},
		Short:   "Delete a payment from the active sheet",
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	position, err := parseRowNumber(args[0])
	if err != nil {
		return err
	}

	return withSession(cmd, true, func(session *app.Session, _ *config.Config) error {
		if err := session.DeleteAt(position); err != nil {
			return fmt.Errorf("failed to delete row %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted row %s", args[0])))
		printView(cmd, session)
		return nil
	})
}
