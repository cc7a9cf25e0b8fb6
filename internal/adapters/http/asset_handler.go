package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/3-lines-studio/ssrkit/internal/metrics"
)

const (
	cacheImmutable  = "public, max-age=31536000, immutable"
	cacheRevalidate = "no-cache"
)

// AssetHandler serves built files from root and passes everything else to next.
type AssetHandler struct {
	root string
	next http.Handler
}

func NewAssetHandler(root string, next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return &AssetHandler{
		root: root,
		next: next,
	}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		h.next.ServeHTTP(w, req)
		return
	}

	rel, ok := core.CleanAssetPath(req.URL.Path)
	if !ok || core.IsManifestFile(rel) {
		h.next.ServeHTTP(w, req)
		return
	}

	fullPath := filepath.Join(h.root, filepath.FromSlash(rel))

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		h.next.ServeHTTP(w, req)
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		h.next.ServeHTTP(w, req)
		return
	}
	defer func() { _ = file.Close() }()

	if contentType := core.GetContentType(rel); contentType != "application/octet-stream" {
		w.Header().Set("Content-Type", contentType)
	}

	if core.IsHashedAsset(rel) {
		w.Header().Set("Cache-Control", cacheImmutable)
		metrics.StaticRequestsTotal.WithLabelValues("immutable").Inc()
	} else {
		w.Header().Set("Cache-Control", cacheRevalidate)
		metrics.StaticRequestsTotal.WithLabelValues("revalidate").Inc()
	}

	http.ServeContent(w, req, info.Name(), info.ModTime(), file)
}
