// Package cli is the remate command line: the local server, schema
// maintenance, purging retired rows and PDF conversion.
package cli

import (
	"errors"
	"fmt"

	"remate/bootstrap"
	"remate/internal/config"
	"remate/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCommandError = 2
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns ExitFailure for errors that are not an *ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// RootOptions holds global flags and the loaded configuration.
type RootOptions struct {
	Database string
	EnvFile  string
	Config   *config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "remate",
		Short:         "Auction ledger for agricultural equipment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(opts.EnvFile)
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}
			if opts.Database != "" {
				cfg.DBPath = opts.Database
			}
			if err := bootstrap.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat); err != nil {
				return WrapExitError(ExitCommandError, "configure logging", err)
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the SQLite database (overrides REMATE_DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional env file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewPurgeCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))

	return cmd
}

func closeStore(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("error closing store")
	}
}
