package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"household/internal/storage"
)

func newMigrateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := storage.RunMigrations(rt.cfg.SQLiteDBPath)
			if err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, rt.cfg.SQLiteDBPath)
			return nil
		},
	}
}

func newSeedDemoCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Create or refresh the demo household",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.App(cmd.Context())
			if err != nil {
				return err
			}
			g, err := app.Groups.EnsureDemo(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeding demo group: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "demo group %s ready (%s)\n", g.ID, g.Name)
			return nil
		},
	}
}
