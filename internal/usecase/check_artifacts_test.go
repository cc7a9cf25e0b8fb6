package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOutput struct {
	lines []string
}

func (o *recordingOutput) PrintHeader(msg string) { o.lines = append(o.lines, "header: "+msg) }
func (o *recordingOutput) PrintStep(emoji, msg string, args ...any) {
	o.lines = append(o.lines, "step: "+fmt.Sprintf(msg, args...))
}
func (o *recordingOutput) PrintSuccess(msg string, args ...any) {
	o.lines = append(o.lines, "ok: "+fmt.Sprintf(msg, args...))
}
func (o *recordingOutput) PrintWarning(msg string, args ...any) {
	o.lines = append(o.lines, "warn: "+fmt.Sprintf(msg, args...))
}
func (o *recordingOutput) PrintError(msg string, args ...any) {
	o.lines = append(o.lines, "error: "+fmt.Sprintf(msg, args...))
}
func (o *recordingOutput) PrintFile(path string) { o.lines = append(o.lines, "file: "+path) }
func (o *recordingOutput) PrintErrorFile(path string) {
	o.lines = append(o.lines, "error file: "+path)
}
func (o *recordingOutput) PrintDone(msg string) { o.lines = append(o.lines, "done: "+msg) }

func TestCheckArtifacts_AllPresent(t *testing.T) {
	report, artifacts, err := CheckArtifacts(artifactFS(nil), defaultPaths, "dist")
	require.NoError(t, err)
	require.NotNil(t, artifacts)

	assert.True(t, report.OK())
	assert.Equal(t, "main.js", report.Entry)
	assert.Equal(t, 1, report.BundleFiles)
	assert.Equal(t, 2, report.Initial)
	assert.True(t, report.TitleInTemplate)
	assert.Equal(t, []string{"/assets/main.0123456789.js"}, report.Scripts)
	assert.Equal(t, []string{"/assets/main.abcdef0123.css"}, report.Styles)

	out := &recordingOutput{}
	PrintCheckReport(out, report)
	assert.Contains(t, out.lines, "step: script /assets/main.0123456789.js")
	assert.Contains(t, out.lines, "step: style  /assets/main.abcdef0123.css")
	assert.Contains(t, out.lines, "done: All artifacts present")
}

func TestCheckArtifacts_MissingAssets(t *testing.T) {
	fsys := artifactFS(map[string]string{"dist/assets/main.abcdef0123.css": ""})

	report, _, err := CheckArtifacts(fsys, defaultPaths, "dist")
	require.NoError(t, err)

	assert.False(t, report.OK())
	assert.Equal(t, []string{"assets/main.abcdef0123.css"}, report.MissingAssets)

	out := &recordingOutput{}
	PrintCheckReport(out, report)
	assert.Equal(t, []string{
		"error: 1 assets listed in the client manifest are missing from the dist directory:",
		"error file: assets/main.abcdef0123.css",
	}, out.lines[len(out.lines)-2:])
}

func TestCheckArtifacts_NoManifest(t *testing.T) {
	paths := defaultPaths
	paths.ClientManifest = ""

	report, _, err := CheckArtifacts(artifactFS(nil), paths, "dist")
	require.NoError(t, err)

	assert.False(t, report.HasManifest)
	assert.True(t, report.OK())

	out := &recordingOutput{}
	PrintCheckReport(out, report)
	assert.Contains(t, out.lines, "warn: no client manifest configured; assets will not be injected")
}

func TestCheckArtifacts_LoadError(t *testing.T) {
	_, _, err := CheckArtifacts(artifactFS(map[string]string{defaultPaths.ServerBundle: ""}), defaultPaths, "dist")
	assert.Error(t, err)
}
