package core

import (
	"path"
	"regexp"
	"strings"
)

// hashedName matches the bundler's [name].[hash:10].[ext] output.
var hashedName = regexp.MustCompile(`\.[0-9a-f]{10}\.[A-Za-z0-9]+$`)

// CleanAssetPath turns a request path into a slash-separated path relative to the
// static root. ok is false for the root and for anything escaping it.
func CleanAssetPath(requestPath string) (rel string, ok bool) {
	if strings.Contains(requestPath, "\x00") {
		return "", false
	}
	for _, seg := range strings.Split(requestPath, "/") {
		if seg == ".." {
			return "", false
		}
	}

	cleaned := path.Clean("/" + requestPath)
	rel = strings.TrimPrefix(cleaned, "/")
	if rel == "" || rel == "." {
		return "", false
	}
	return rel, true
}

func IsHashedAsset(name string) bool {
	return hashedName.MatchString(path.Base(name))
}

// IsManifestFile reports build metadata that must not be served publicly.
func IsManifestFile(rel string) bool {
	switch path.Base(rel) {
	case "vue-ssr-client-manifest.json", "vue-ssr-server-bundle.json", "assets-manifest.json":
		return true
	}
	return false
}
