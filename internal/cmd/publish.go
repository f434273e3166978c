package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zigcc/zbuild/internal/publish"
)

func newPublishCommand(root *RootCommand) *cobra.Command {
	vpr := newViper()

	var cfg publish.Config

	cmd := &cobra.Command{
		Use:          "publish [flags] DISTRIBUTION...",
		Short:        "Upload built distributions to an S3 compatible object store",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		PreRunE: func(*cobra.Command, []string) error {
			return vpr.Unmarshal(&cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := root.Logger()
			if err != nil {
				return err
			}
			defer logger.Close()

			doc, err := root.Document()
			if err != nil {
				return err
			}

			store, err := publish.NewStore(cmd.Context(), logger, cfg)
			if err != nil {
				return err
			}

			for _, path := range args {
				key, err := store.Upload(cmd.Context(), doc, path)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), key)
			}

			return nil
		},
	}

	cmd.Flags().String("endpoint", "", "Host and port of the object store")
	cmd.Flags().String("access-key", "", "Object store access key")
	cmd.Flags().String("secret-key", "", "Object store secret key")
	cmd.Flags().String("bucket", "", "Bucket distributions are uploaded to")
	cmd.Flags().Bool("use-ssl", true, "Toggle for TLS on object store connections")

	if err := bindFlags(vpr, cmd.Flags()); err != nil {
		panic(err)
	}

	return cmd
}
