package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/3-lines-studio/ssrkit/internal/adapters/fs"
	"github.com/3-lines-studio/ssrkit/internal/adapters/process"
	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/3-lines-studio/ssrkit/internal/usecase"
)

// skipIfNoRenderer skips unless node can resolve vue-server-renderer from
// testdata (npm install in testdata enables these tests).
func skipIfNoRenderer(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping node-backed test in short mode")
	}
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("node not available, skipping E2E test")
	}

	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)

	probe := exec.Command("node", "-e", "require.resolve('vue-server-renderer'); require.resolve('vue')")
	probe.Dir = dir
	if err := probe.Run(); err != nil {
		t.Skip("vue-server-renderer not installed in testdata, skipping E2E test")
	}
	return dir
}

func newNodeServer(t *testing.T, policy core.NotFoundPolicy) *httptest.Server {
	dir := skipIfNoRenderer(t)
	logger := zaptest.NewLogger(t)

	artifacts, err := usecase.LoadArtifacts(fs.NewOSFileSystem(dir), usecase.ArtifactPaths{
		ServerBundle:   "app/ssr-bundle/vue-ssr-server-bundle.json",
		Template:       "app/template/index.template.html",
		ClientManifest: "dist/vue-ssr-client-manifest.json",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	renderer, err := process.NewRenderer(ctx, artifacts, process.Options{
		WorkDir:        dir,
		StartupTimeout: 20 * time.Second,
		Stdout:         io.Discard,
		Logger:         logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = renderer.Stop() })

	service := usecase.NewPageService(renderer, usecase.PageServiceOptions{Logger: logger})
	srv := New(service, Options{
		DistDir:        filepath.Join(dir, "dist"),
		NotFoundPolicy: policy,
		Logger:         logger,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestNodeRendersPages(t *testing.T) {
	ts := newNodeServer(t, core.NotFoundFallthrough)

	for _, path := range []string{"/", "/about"} {
		resp, html := get(t, ts.URL+path)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, html, "<title>同构测试</title>")
		assert.Contains(t, html, `data-server-rendered="true"`)
		assert.Contains(t, html, "url: "+path)
		assert.Contains(t, html, "app.0123456789.js")
	}
}

func TestNodeNotFoundAndFailure(t *testing.T) {
	ts := newNodeServer(t, core.NotFoundStatus)

	resp, _ := get(t, ts.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := get(t, ts.URL+"/explode")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "服务器内部错误", body)

	// the renderer keeps serving after a failed render
	resp, _ = get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNodeServesStaticAssets(t *testing.T) {
	ts := newNodeServer(t, core.NotFoundFallthrough)

	resp, body := get(t, ts.URL+"/app.0123456789.js")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=31536000, immutable", resp.Header.Get("Cache-Control"))
	assert.Contains(t, body, "window.__app")

	resp, _ = get(t, ts.URL+"/vue-ssr-client-manifest.json")
	assert.NotEqual(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestNodeConcurrentRequestsAreIsolated(t *testing.T) {
	ts := newNodeServer(t, core.NotFoundFallthrough)

	paths := []string{"/a", "/b", "/c", "/d", "/e", "/f", "/g", "/h", "/i", "/j"}
	bodies := make([]string, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			resp, err := http.Get(ts.URL + p)
			if !assert.NoError(t, err) {
				return
			}
			defer func() { _ = resp.Body.Close() }()
			b, _ := io.ReadAll(resp.Body)
			bodies[i] = string(b)
		}(i, p)
	}
	wg.Wait()

	for i, p := range paths {
		assert.Contains(t, bodies[i], "url: "+p+"<")
	}
}
