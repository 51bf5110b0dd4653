package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/cli"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/model"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active sheet",
		Long: `Show prints the active sheet with the saved sort and filter applied.
Flags override them for this listing only.`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	cmd.Flags().String("sheet", "", "Show this sheet instead of the active one")
	cmd.Flags().String("sort", "", "Sort by who, why or amount")
	cmd.Flags().Bool("desc", false, "Sort descending")
	cmd.Flags().String("person", "", "Only show payments to this person")
	cmd.Flags().Bool("all-people", false, "List the people on the sheet")

	return cmd
}

func runShow(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	sheet, _ := flags.GetString("sheet")
	sortFlag, _ := flags.GetString("sort")
	desc, _ := flags.GetBool("desc")
	person, _ := flags.GetString("person")
	allPeople, _ := flags.GetBool("all-people")

	return withSession(cmd, false, func(session *app.Session, _ *config.Config) error {
		if sheet != "" {
			if err := session.SetActiveSheet(sheet, true); err != nil {
				return err
			}
		}
		if sortFlag != "" {
			key, err := model.ParseSortKey(sortFlag)
			if err != nil {
				return err
			}
			session.SetSort(model.SortNone)
			session.SetSort(key)
		}
		if flags.Changed("desc") {
			session.SetSortDirection(!desc)
		}
		if flags.Changed("person") {
			session.SetFilter(person)
		}

		printView(cmd, session)

		if allPeople {
			res := session.View()
			fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("People"))
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderPeople(res.People, res.Filter))
		}
		return nil
	})
}
