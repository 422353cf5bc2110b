// Package cli implements verbctl, the operator command line for seeding
// verbs and managing the database schema.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/konjug-backend/internal/adapter/postgres"
	"github.com/heartmarshall/konjug-backend/internal/app"
	"github.com/heartmarshall/konjug-backend/internal/config"
)

type rootOptions struct {
	configPath string
}

// Execute runs verbctl with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "verbctl",
		Short: "Operator tools for the konjug verb database",
		Long: `verbctl seeds verb documents from JSON files and manages the
PostgreSQL schema used by the konjug API.

Configuration is read the same way as the server: --config (or CONFIG_PATH)
names a YAML file, and environment variables override it.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")

	cmd.AddCommand(
		newImportCmd(opts),
		newMigrateCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// env is what every database-backed subcommand needs.
type env struct {
	cfg  *config.Config
	log  *slog.Logger
	pool *pgxpool.Pool
}

// connect loads configuration, builds the logger, and opens the pool.
// Callers must close the returned env.
func (o *rootOptions) connect(ctx context.Context) (*env, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &env{cfg: cfg, log: logger, pool: pool}, nil
}

func (e *env) close() {
	e.pool.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "verbctl", app.BuildVersion())
		},
	}
}
