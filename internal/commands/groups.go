package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newGroupsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Inspect households",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List households, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			groups, err := app.Groups.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing groups: %w", err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no groups")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPERSONS\tCREATED")
			for _, g := range groups {
				names := make([]string, 0, len(g.Persons))
				for _, p := range g.Persons {
					names = append(names, p.Name)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.Name, strings.Join(names, " & "), g.CreatedAt.Format(time.DateOnly))
			}
			return tw.Flush()
		},
	})
	return cmd
}
