package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregwood-db/prune-exports/internal/version"
)

func newVersionCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()

			if jsonOutput {
				out, err := info.JSON()
				if err != nil {
					return &ExitError{Code: 1, Err: err}
				}

				fmt.Fprintln(cmd.OutOrStdout(), out)

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), info.String())

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output version info as JSON")

	return cmd
}
