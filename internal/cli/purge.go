package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"remate/bootstrap"
	"remate/internal/application/auctions"
	"remate/internal/application/bundles"
	"remate/internal/application/clients"
	"remate/internal/application/sales"
	"remate/internal/application/transactions"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type purger func(ctx context.Context, db *gorm.DB, id uint) error

var purgers = map[string]purger{
	"client": func(ctx context.Context, db *gorm.DB, id uint) error {
		return (&clients.Service{DB: db}).Purge(ctx, id)
	},
	"auction": func(ctx context.Context, db *gorm.DB, id uint) error {
		return (&auctions.Service{DB: db}).Purge(ctx, id)
	},
	"bundle": func(ctx context.Context, db *gorm.DB, id uint) error {
		return (&bundles.Service{DB: db}).Purge(ctx, id)
	},
	"sale": func(ctx context.Context, db *gorm.DB, id uint) error {
		return (&sales.Service{DB: db}).Purge(ctx, id)
	},
	"transaction": func(ctx context.Context, db *gorm.DB, id uint) error {
		return (&transactions.Service{DB: db}).Purge(ctx, id)
	},
}

func entities() []string {
	out := make([]string, 0, len(purgers))
	for name := range purgers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func NewPurgeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "purge <entity> <id>",
		Short: "Permanently remove a soft-deleted row",
		Long: fmt.Sprintf(`Permanently remove a soft-deleted row and the rows that cascade from it.
Live rows are refused. Entities: %s.`, strings.Join(entities(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity := strings.TrimSuffix(strings.ToLower(args[0]), "s")
			purge, ok := purgers[entity]
			if !ok {
				return WrapExitError(ExitCommandError, fmt.Sprintf("unknown entity %q", args[0]), nil)
			}
			id, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil || id == 0 {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid id %q", args[1]), nil)
			}

			db, engine, err := bootstrap.OpenStore(rootOpts.Config.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer closeStore(db)
			if _, err := bootstrap.Migrate(cmd.Context(), engine); err != nil {
				return WrapExitError(ExitFailure, "migrate", err)
			}

			if err := purge(cmd.Context(), db, uint(id)); err != nil {
				return WrapExitError(ExitFailure, "purge", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %s %d\n", entity, id)
			return nil
		},
	}
}
