package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/konjug-backend/internal/adapter/postgres"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if err := postgres.Migrate(cmd.Context(), e.pool, e.log); err != nil {
				return err
			}
			return printStatus(cmd, e)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and latest schema versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			return printStatus(cmd, e)
		},
	})

	return cmd
}

func printStatus(cmd *cobra.Command, e *env) error {
	current, latest, err := postgres.MigrationStatus(cmd.Context(), e.pool)
	if err != nil {
		return err
	}

	state := "up to date"
	if current < latest {
		state = fmt.Sprintf("%d pending", latest-current)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d of %d (%s)\n", current, latest, state)
	return nil
}
