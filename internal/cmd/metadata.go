package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zigcc/zbuild/internal/project"
)

func newMetadataCommand(root *RootCommand) *cobra.Command {
	var (
		filter   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:          "metadata",
		Short:        "Render the core metadata for the project",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := root.Document()
			if err != nil {
				return err
			}

			if filter != "" {
				result, err := doc.Filter(filter)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(result))

				return nil
			}

			metadata, err := doc.RenderMetadata(root.Opts.Project)
			if err != nil {
				return err
			}

			if validate {
				if err := project.ValidateMetadata(metadata); err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), metadata)

			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Print the project document filtered through a jq expression instead of core metadata")
	cmd.Flags().BoolVar(&validate, "validate", false, "Fail if a required core metadata field is missing")

	return cmd
}
