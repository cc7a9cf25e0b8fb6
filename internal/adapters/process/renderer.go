package process

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/3-lines-studio/ssrkit/internal/core"
)

//go:embed node_renderer.js
var NodeRendererSource string

// ErrProcessExited wraps the exit status of a renderer process that is gone.
var ErrProcessExited = errors.New("renderer process exited")

type Options struct {
	NodeBinary     string
	WorkDir        string
	StartupTimeout time.Duration
	Stdout         io.Writer
	Stderr         io.Writer
	Logger         *zap.Logger
}

// Renderer drives a Node.js process hosting the bundle renderer. It is safe for
// concurrent use.
type Renderer struct {
	cmd    *exec.Cmd
	socket string
	client *http.Client
	logger *zap.Logger

	done     chan struct{} // closed once the process has been reaped
	exitErr  error
	stopping atomic.Bool
}

func NewRenderer(ctx context.Context, artifacts *core.Artifacts, opts Options) (*Renderer, error) {
	if artifacts == nil || artifacts.Bundle == nil || artifacts.Template == nil {
		return nil, errors.New("renderer requires a loaded bundle and template")
	}

	opts = withDefaults(opts)
	socket := filepath.Join(os.TempDir(), fmt.Sprintf("ssrkit-%s.sock", uuid.NewString()))

	cmd := exec.Command(opts.NodeBinary, "-")
	cmd.Dir = opts.WorkDir
	cmd.Env = append(os.Environ(), "SSRKIT_SOCKET="+socket)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	cmd.Stdin = strings.NewReader(NodeRendererSource)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", opts.NodeBinary, err)
	}

	r := newSocketRenderer(socket, opts.Logger)
	r.cmd = cmd
	r.done = make(chan struct{})
	go r.wait()

	waitCtx, cancel := context.WithTimeout(ctx, opts.StartupTimeout)
	defer cancel()

	if err := waitForSocket(waitCtx, socket, r.done); err != nil {
		_ = r.Stop()
		if errors.Is(err, ErrProcessExited) {
			return nil, fmt.Errorf("renderer startup: %w", r.Err())
		}
		return nil, err
	}

	if err := r.init(ctx, artifacts); err != nil {
		_ = r.Stop()
		return nil, err
	}

	opts.Logger.Info("renderer process started",
		zap.Int("pid", cmd.Process.Pid),
		zap.String("socket", socket),
		zap.String("entry", artifacts.Bundle.Entry),
		zap.Bool("client_manifest", artifacts.HasManifest()),
	)

	return r, nil
}

func newSocketRenderer(socket string, logger *zap.Logger) *Renderer {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socket)
		},
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Renderer{
		socket: socket,
		client: &http.Client{Transport: transport},
		logger: logger,
	}
}

func withDefaults(opts Options) Options {
	if opts.NodeBinary == "" {
		opts.NodeBinary = "node"
	}
	if opts.StartupTimeout <= 0 {
		opts.StartupTimeout = 5 * time.Second
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// wait reaps the process and records why it ended.
func (r *Renderer) wait() {
	err := r.cmd.Wait()
	if err != nil {
		r.exitErr = fmt.Errorf("%w: %w", ErrProcessExited, err)
	} else {
		r.exitErr = ErrProcessExited
	}

	if !r.stopping.Load() {
		r.logger.Error("renderer process exited unexpectedly",
			zap.Int("pid", r.cmd.Process.Pid),
			zap.Error(err),
		)
	}
	close(r.done)
}

// Done is closed when the renderer process has exited. It is nil for a
// renderer that does not own a process.
func (r *Renderer) Done() <-chan struct{} {
	return r.done
}

// Err reports why the process exited, or nil while it is running.
func (r *Renderer) Err() error {
	select {
	case <-r.done:
		return r.exitErr
	default:
		return nil
	}
}

func (r *Renderer) Stop() error {
	r.stopping.Store(true)

	var err error
	if r.cmd != nil && r.cmd.Process != nil {
		select {
		case <-r.done:
		default:
			if killErr := r.cmd.Process.Kill(); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
				err = killErr
			}
			<-r.done
		}
	}
	_ = os.Remove(r.socket)
	return err
}

type rendererError struct {
	Message string          `json:"message"`
	Stack   string          `json:"stack"`
	Code    json.RawMessage `json:"code"`
}

func (e *rendererError) toRenderError() *core.RenderError {
	return &core.RenderError{
		Message: e.Message,
		Stack:   e.Stack,
		Code:    decodeCode(e.Code),
	}
}

func (r *Renderer) init(ctx context.Context, artifacts *core.Artifacts) error {
	reqBody := map[string]any{
		"bundle":         artifacts.BundleRaw,
		"template":       artifacts.Template.Source,
		"clientManifest": artifacts.ManifestRaw,
	}

	var result struct {
		OK    bool           `json:"ok"`
		Error *rendererError `json:"error"`
	}

	if err := r.postJSON(ctx, "/init", reqBody, &result); err != nil {
		return fmt.Errorf("renderer init: %w", err)
	}

	if result.Error != nil {
		return fmt.Errorf("renderer init: %w", result.Error.toRenderError())
	}

	if !result.OK {
		return errors.New("renderer init: not acknowledged")
	}

	return nil
}

func (r *Renderer) Render(ctx context.Context, rc core.RenderContext) (string, error) {
	if err := r.Err(); err != nil {
		return "", fmt.Errorf("renderer request: %w", err)
	}

	reqBody := map[string]any{
		"context": rc,
	}

	var result struct {
		HTML  string         `json:"html"`
		Error *rendererError `json:"error"`
	}

	if err := r.postJSON(ctx, "/render", reqBody, &result); err != nil {
		return "", fmt.Errorf("renderer request: %w", err)
	}

	if result.Error != nil {
		return "", result.Error.toRenderError()
	}

	return result.HTML, nil
}

func (r *Renderer) postJSON(ctx context.Context, endpoint string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://localhost"+endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// decodeCode accepts the code as a JSON number or string.
func decodeCode(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	return string(raw)
}

// waitForSocket returns once the socket accepts connections. The file alone
// appears at bind time, before the server listens.
func waitForSocket(ctx context.Context, path string, exited <-chan struct{}) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "unix", path)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		select {
		case <-exited:
			return ErrProcessExited
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for renderer socket at %s: %w", path, ctx.Err())
		case <-ticker.C:
		}
	}
}
