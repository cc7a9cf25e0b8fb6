package usecase

import (
	"path"

	"github.com/3-lines-studio/ssrkit/internal/core"
)

type CheckReport struct {
	Entry           string
	BundleFiles     int
	HasManifest     bool
	Initial         int
	Async           int
	Scripts         []string // initial script URLs injected into every page
	Styles          []string
	MissingAssets   []string
	TitleInTemplate bool
}

func (r CheckReport) OK() bool {
	return len(r.MissingAssets) == 0
}

// CheckArtifacts loads the artifacts and verifies every manifest asset exists in
// distDir.
func CheckArtifacts(fsys FileSystem, paths ArtifactPaths, distDir string) (*CheckReport, *core.Artifacts, error) {
	artifacts, err := LoadArtifacts(fsys, paths)
	if err != nil {
		return nil, nil, err
	}

	report := &CheckReport{
		Entry:           artifacts.Bundle.Entry,
		BundleFiles:     artifacts.Bundle.FileCount(),
		HasManifest:     artifacts.HasManifest(),
		TitleInTemplate: artifacts.Template.HasTitle(),
	}

	if !artifacts.HasManifest() {
		return report, artifacts, nil
	}

	report.Initial = len(artifacts.Manifest.Initial)
	report.Async = len(artifacts.Manifest.Async)

	for _, f := range artifacts.Manifest.InitialScripts() {
		report.Scripts = append(report.Scripts, artifacts.Manifest.AssetURL(f))
	}
	for _, f := range artifacts.Manifest.InitialStyles() {
		report.Styles = append(report.Styles, artifacts.Manifest.AssetURL(f))
	}

	for _, file := range artifacts.Manifest.All {
		if !fsys.FileExists(path.Join(distDir, file)) {
			report.MissingAssets = append(report.MissingAssets, file)
		}
	}

	return report, artifacts, nil
}

// PrintCheckReport writes report to out in the CLI's step format.
func PrintCheckReport(out CLIOutput, report *CheckReport) {
	out.PrintHeader("ssrkit check")
	out.PrintSuccess("server bundle entry %s (%d files)", report.Entry, report.BundleFiles)

	if report.TitleInTemplate {
		out.PrintSuccess("template interpolates {{ title }}")
	} else {
		out.PrintWarning("template does not interpolate {{ title }}")
	}

	if !report.HasManifest {
		out.PrintWarning("no client manifest configured; assets will not be injected")
		out.PrintDone("Done")
		return
	}

	out.PrintSuccess("client manifest: %d initial, %d async assets", report.Initial, report.Async)
	for _, u := range report.Styles {
		out.PrintStep("", "style  %s", u)
	}
	for _, u := range report.Scripts {
		out.PrintStep("", "script %s", u)
	}

	if report.OK() {
		out.PrintDone("All artifacts present")
		return
	}

	out.PrintError("%d assets listed in the client manifest are missing from the dist directory:", len(report.MissingAssets))
	for _, f := range report.MissingAssets {
		out.PrintErrorFile(f)
	}
}
