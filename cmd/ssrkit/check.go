package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/ssrkit/internal/adapters/cli"
	"github.com/3-lines-studio/ssrkit/internal/adapters/fs"
	"github.com/3-lines-studio/ssrkit/internal/config"
	"github.com/3-lines-studio/ssrkit/internal/usecase"
)

var errMissingAssets = errors.New("client manifest references missing assets")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the build artifacts without starting the renderer",
		Long: `Reads the server bundle, template and client manifest exactly as serve
would, then verifies every asset listed in the client manifest exists in the
dist directory. Exits non-zero when anything is missing or malformed.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	output := cli.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		output.DisableColors()
	}

	cfg, err := config.Load()
	if err != nil {
		output.PrintError("failed to load config: %v", err)
		return err
	}

	report, _, err := usecase.CheckArtifacts(fs.NewOSFileSystem(""), artifactPaths(cfg), cfg.DistDir)
	if err != nil {
		output.PrintError("%v", err)
		return fmt.Errorf("check artifacts: %w", err)
	}

	usecase.PrintCheckReport(output, report)

	if !report.OK() {
		return errMissingAssets
	}
	return nil
}
