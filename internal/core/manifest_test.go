package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const validManifest = `{
  "publicPath": "/",
  "all": ["assets/manifest.0123456789.js", "assets/vendor.abcdef0123.js", "assets/main.aaaaaaaaaa.js", "assets/main.bbbbbbbbbb.css", "assets/about.cccccccccc.js"],
  "initial": ["assets/manifest.0123456789.js", "assets/vendor.abcdef0123.js", "assets/main.aaaaaaaaaa.js", "assets/main.bbbbbbbbbb.css"],
  "async": ["assets/about.cccccccccc.js"],
  "modules": {"1a2b3c": [2, 3]}
}`

func TestParseClientManifest(t *testing.T) {
	m, err := ParseClientManifest([]byte(validManifest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantScripts := []string{"assets/manifest.0123456789.js", "assets/vendor.abcdef0123.js", "assets/main.aaaaaaaaaa.js"}
	if diff := cmp.Diff(wantScripts, m.InitialScripts()); diff != "" {
		t.Errorf("InitialScripts() mismatch (-want +got):\n%s", diff)
	}

	wantStyles := []string{"assets/main.bbbbbbbbbb.css"}
	if diff := cmp.Diff(wantStyles, m.InitialStyles()); diff != "" {
		t.Errorf("InitialStyles() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseClientManifestInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `[`},
		{name: "initial not in all", data: `{"all":[],"initial":["a.js"]}`},
		{name: "async not in all", data: `{"all":["a.js"],"async":["b.js"]}`},
		{name: "module index out of range", data: `{"all":["a.js"],"modules":{"x":[3]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClientManifest([]byte(tt.data))
			if !errors.Is(err, ErrManifestInvalid) {
				t.Errorf("expected ErrManifestInvalid, got %v", err)
			}
		})
	}
}

func TestAssetURL(t *testing.T) {
	tests := []struct {
		name     string
		manifest *ClientManifest
		file     string
		want     string
	}{
		{name: "nil manifest", manifest: nil, file: "assets/a.js", want: "/assets/a.js"},
		{name: "root public path", manifest: &ClientManifest{PublicPath: "/"}, file: "assets/a.js", want: "/assets/a.js"},
		{name: "cdn public path", manifest: &ClientManifest{PublicPath: "//cdn.example.com/app/"}, file: "assets/a.js", want: "//cdn.example.com/app/assets/a.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.manifest.AssetURL(tt.file); got != tt.want {
				t.Errorf("AssetURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
