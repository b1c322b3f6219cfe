package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"household/internal/backend"
	"household/internal/cli"
	"household/internal/config"
	"household/internal/log"
)

// runtime holds what the subcommands share. The app is opened lazily so
// commands that only touch the schema never build services.
type runtime struct {
	dbPath string
	cfg    *config.Config
	logger *log.Logger
	app    *backend.App
}

func (rt *runtime) App(ctx context.Context) (*backend.App, error) {
	if rt.app != nil {
		return rt.app, nil
	}
	bc, err := backend.FromAppConfig(rt.cfg)
	if err != nil {
		return nil, err
	}
	app, err := backend.NewFactory(rt.logger, nil).CreateApp(ctx, bc)
	if err != nil {
		return nil, err
	}
	rt.app = app
	return app, nil
}

func (rt *runtime) close() error {
	if rt.app == nil || rt.app.Cleanup == nil {
		return nil
	}
	err := rt.app.Cleanup()
	rt.app = nil
	return err
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rt := &runtime{}
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "householdctl",
		Short: "Operate the household expense-splitting service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.LoadEnvFile()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if rt.dbPath != "" {
				cfg.SQLiteDBPath = rt.dbPath
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = cli.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, log.ComponentCLI)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&rt.dbPath, "db", "", "SQLite database path (default from SQLITE_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newMigrateCommand(rt),
		newSeedDemoCommand(rt),
		newGroupsCommand(rt),
		newBalancesCommand(rt),
		newSummaryCommand(rt),
		newExportCommand(rt),
		newExpenseCommand(rt),
	)

	return rootCmd
}
