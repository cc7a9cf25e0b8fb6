package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/3-lines-studio/ssrkit/internal/core"
)

type ArtifactPaths struct {
	ServerBundle   string
	Template       string
	ClientManifest string // optional
}

// LoadArtifacts reads and validates the build output once at startup.
func LoadArtifacts(fsys FileSystem, paths ArtifactPaths) (*core.Artifacts, error) {
	bundleData, err := fsys.ReadFile(paths.ServerBundle)
	if err != nil {
		return nil, fmt.Errorf("read server bundle %s: %w", paths.ServerBundle, err)
	}

	bundle, err := core.ParseServerBundle(bundleData)
	if err != nil {
		return nil, fmt.Errorf("parse server bundle %s: %w", paths.ServerBundle, err)
	}

	templateData, err := fsys.ReadFile(paths.Template)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", paths.Template, err)
	}

	tmpl, err := core.ParseTemplate(templateData)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", paths.Template, err)
	}

	artifacts := &core.Artifacts{
		Bundle:    bundle,
		BundleRaw: json.RawMessage(bundleData),
		Template:  tmpl,
	}

	if paths.ClientManifest == "" {
		return artifacts, nil
	}

	manifestData, err := fsys.ReadFile(paths.ClientManifest)
	if err != nil {
		return nil, fmt.Errorf("read client manifest %s: %w", paths.ClientManifest, err)
	}

	manifest, err := core.ParseClientManifest(manifestData)
	if err != nil {
		return nil, fmt.Errorf("parse client manifest %s: %w", paths.ClientManifest, err)
	}

	artifacts.Manifest = manifest
	artifacts.ManifestRaw = json.RawMessage(manifestData)

	return artifacts, nil
}
