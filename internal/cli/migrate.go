package cli

import (
	"fmt"

	"remate/bootstrap"
	"remate/internal/infrastructure/migrations"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect or advance the schema version",
	}
	cmd.AddCommand(newMigrateUpCommand(rootOpts))
	cmd.AddCommand(newMigrateStatusCommand(rootOpts))
	return cmd
}

func newMigrateUpCommand(rootOpts *RootOptions) *cobra.Command {
	var to int
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Long: `Apply pending migrations in order, each in its own transaction.

Example:
  remate migrate up
  remate migrate up --to 3 --db ./remate.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, engine, err := bootstrap.OpenStore(rootOpts.Config.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer closeStore(db)

			target := engine.Latest()
			if cmd.Flags().Changed("to") {
				target = to
			}
			res, err := engine.UpTo(cmd.Context(), target)
			if err != nil {
				return WrapExitError(ExitFailure, "migrate", err)
			}
			if len(res.Applied) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "schema already at version %d\n", res.To)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated from version %d to %d\n", res.From, res.To)
			return nil
		},
	}
	cmd.Flags().IntVar(&to, "to", 0, "stop at this version")
	return cmd
}

func newMigrateStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, engine, err := bootstrap.OpenStore(rootOpts.Config.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer closeStore(db)

			statuses, err := engine.Status(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "read schema history", err)
			}
			return migrations.Render(cmd.OutOrStdout(), statuses)
		},
	}
}
