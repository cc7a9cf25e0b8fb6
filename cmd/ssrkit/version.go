package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/ssrkit/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "ssrkit %s (commit %s, built %s, %s)\n", v.Version, v.Commit, v.BuildTime, v.GoVersion)
		},
	}
}
