package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
)

func filterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter [person]",
		Short: "Only show payments to one person",
		Long: `Filter limits the view of the active sheet to one person and shows their
total. Run without a person to clear the filter.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFilter,
	}
}

func runFilter(cmd *cobra.Command, args []string) error {
	person := ""
	if len(args) == 1 {
		person = strings.TrimSpace(args[0])
	}

	return withSession(cmd, true, func(session *app.Session, _ *config.Config) error {
		session.SetFilter(person)
		res := session.View()
		if person != "" && res.Filter == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("Nobody named %q on this sheet", person)))
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderPeople(res.People, ""))
			return nil
		}
		printView(cmd, session)
		return nil
	})
}
