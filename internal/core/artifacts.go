package core

import "encoding/json"

// Artifacts is the read-once build output shared by every request.
type Artifacts struct {
	Bundle      *ServerBundle
	BundleRaw   json.RawMessage
	Manifest    *ClientManifest
	ManifestRaw json.RawMessage
	Template    *Template
}

func (a *Artifacts) HasManifest() bool {
	return a != nil && a.Manifest != nil
}
