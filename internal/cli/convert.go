package cli

import (
	"fmt"

	"remate/bootstrap"

	"github.com/spf13/cobra"
)

func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <html>",
		Short: "Convert a rendered HTML report to PDF",
		Long: `Convert a rendered HTML report to a PDF next to it, using the converter
selected by PDF_CONVERTER (command or chrome).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := bootstrap.NewConverter(rootOpts.Config)
			if err != nil {
				return WrapExitError(ExitCommandError, "converter", err)
			}
			if conv == nil {
				return WrapExitError(ExitCommandError, "PDF conversion is disabled", nil)
			}
			out, err := conv.Convert(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "convert", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
