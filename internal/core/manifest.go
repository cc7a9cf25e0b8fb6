package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ClientManifest mirrors vue-ssr-client-manifest.json.
type ClientManifest struct {
	PublicPath string           `json:"publicPath"`
	All        []string         `json:"all"`
	Initial    []string         `json:"initial"`
	Async      []string         `json:"async"`
	Modules    map[string][]int `json:"modules,omitempty"`
}

func ParseClientManifest(data []byte) (*ClientManifest, error) {
	var m ClientManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}

	known := make(map[string]struct{}, len(m.All))
	for _, f := range m.All {
		known[f] = struct{}{}
	}

	for _, group := range [][]string{m.Initial, m.Async} {
		for _, f := range group {
			if _, ok := known[f]; !ok {
				return nil, fmt.Errorf("%w: %q is not listed in all", ErrManifestInvalid, f)
			}
		}
	}

	for id, indexes := range m.Modules {
		for _, i := range indexes {
			if i < 0 || i >= len(m.All) {
				return nil, fmt.Errorf("%w: module %s references asset index %d", ErrManifestInvalid, id, i)
			}
		}
	}

	return &m, nil
}

func (m *ClientManifest) InitialScripts() []string {
	return m.filter(m.Initial, ".js")
}

func (m *ClientManifest) InitialStyles() []string {
	return m.filter(m.Initial, ".css")
}

// AssetURL joins publicPath and a manifest file name.
func (m *ClientManifest) AssetURL(file string) string {
	if m == nil || m.PublicPath == "" {
		return "/" + strings.TrimPrefix(file, "/")
	}
	return strings.TrimSuffix(m.PublicPath, "/") + "/" + strings.TrimPrefix(file, "/")
}

func (m *ClientManifest) filter(files []string, ext string) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, f := range files {
		if strings.HasSuffix(f, ext) {
			out = append(out, f)
		}
	}
	return out
}
