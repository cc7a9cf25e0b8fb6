package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ssrkit",
		Short: "Server-side rendering host for Vue bundles",
		Long: `ssrkit serves a single-page application rendered on the server.

It loads the server bundle, HTML template and client manifest produced by the
bundler, supervises a Node.js process running the bundle renderer and answers
every GET request with freshly rendered markup.

Run without a subcommand to start the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.PersistentFlags().Bool("no-color", false, "disable colored output")
	root.AddCommand(newServeCmd(), newCheckCmd(), newVersionCmd())
	return root
}
