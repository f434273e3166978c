package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSdistCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:          "sdist",
		Short:        "Build a source distribution",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := root.Logger()
			if err != nil {
				return err
			}
			defer logger.Close()

			path, err := root.Builder(logger).BuildSdist(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
}
