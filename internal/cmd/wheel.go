package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWheelCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:          "wheel",
		Short:        "Build a binary wheel",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := root.Logger()
			if err != nil {
				return err
			}
			defer logger.Close()

			path, err := root.Builder(logger).BuildWheel(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
}
