package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/model"
)

func sortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort <who|why|amount|none>",
		Short: "Sort the view by a column",
		Long: `Sort orders the view by who, why or amount. Sorting by the column that
is already sorted reverses the direction; a new column starts ascending.
"none" returns to the stored order. Stored row order never changes.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"who", "why", "amount", "none"},
		RunE:      runSort,
	}
	cmd.Flags().Bool("asc", false, "Force ascending order")
	cmd.Flags().Bool("desc", false, "Force descending order")
	cmd.MarkFlagsMutuallyExclusive("asc", "desc")
	return cmd
}

func runSort(cmd *cobra.Command, args []string) error {
	arg := args[0]
	if arg == "none" {
		arg = ""
	}
	key, err := model.ParseSortKey(arg)
	if err != nil {
		return err
	}
	asc, _ := cmd.Flags().GetBool("asc")
	desc, _ := cmd.Flags().GetBool("desc")

	return withSession(cmd, true, func(session *app.Session, _ *config.Config) error {
		session.SetSort(key)
		switch {
		case asc:
			session.SetSortDirection(true)
		case desc:
			session.SetSortDirection(false)
		}
		printView(cmd, session)
		return nil
	})
}
