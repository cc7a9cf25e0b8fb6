package usecase

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"

	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/3-lines-studio/ssrkit/internal/metrics"
)

type ServePageInput struct {
	RequestURI string
	RequestID  string
}

type ServePageOutput struct {
	Action  core.PageAction
	HTML    string
	Context core.RenderContext
	Error   error
}

type PageServiceOptions struct {
	Title               string
	RenderTimeout       time.Duration
	SlowRenderThreshold time.Duration
	MinifyHTML          bool
	Clock               clockwork.Clock
	Logger              *zap.Logger
}

type PageService struct {
	renderer Renderer
	opts     PageServiceOptions
	minifier *minify.M
}

func NewPageService(renderer Renderer, opts PageServiceOptions) *PageService {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = core.DefaultTitle
	}

	s := &PageService{
		renderer: renderer,
		opts:     opts,
	}

	if opts.MinifyHTML {
		s.minifier = minify.New()
		s.minifier.Add("text/html", &html.Minifier{
			KeepDocumentTags: true,
			KeepEndTags:      true,
			KeepQuotes:       true,
			KeepWhitespace:   true,
		})
	}

	return s
}

func (s *PageService) ServePage(ctx context.Context, input ServePageInput) ServePageOutput {
	rc := core.NewRenderContext(input.RequestURI, s.opts.Title)

	if s.renderer == nil {
		err := errors.New("renderer not available")
		s.logFailure(input, rc, err)
		metrics.RendersTotal.WithLabelValues(metrics.ResultError).Inc()
		return ServePageOutput{Action: core.ActionError, Context: rc, Error: err}
	}

	if s.opts.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RenderTimeout)
		defer cancel()
	}

	start := s.opts.Clock.Now()
	markup, err := s.renderer.Render(ctx, rc)
	elapsed := s.opts.Clock.Since(start)

	metrics.RenderDuration.Observe(elapsed.Seconds())

	if s.opts.SlowRenderThreshold > 0 && elapsed >= s.opts.SlowRenderThreshold {
		s.opts.Logger.Warn("slow render",
			zap.String("url", rc.URL),
			zap.String("request_id", input.RequestID),
			zap.Duration("duration", elapsed),
		)
	}

	action := core.DecidePageAction(err)

	switch action {
	case core.ActionNotFound:
		metrics.RendersTotal.WithLabelValues(metrics.ResultNotFound).Inc()
		s.opts.Logger.Debug("renderer reported not found",
			zap.String("url", rc.URL),
			zap.String("request_id", input.RequestID),
		)
		return ServePageOutput{Action: core.ActionNotFound, Context: rc, Error: err}

	case core.ActionError:
		metrics.RendersTotal.WithLabelValues(metrics.ResultError).Inc()
		s.logFailure(input, rc, err)
		return ServePageOutput{Action: core.ActionError, Context: rc, Error: err}
	}

	metrics.RendersTotal.WithLabelValues(metrics.ResultOK).Inc()

	return ServePageOutput{
		Action:  core.ActionRender,
		HTML:    s.minify(markup),
		Context: rc,
	}
}

func (s *PageService) minify(markup string) string {
	if s.minifier == nil {
		return markup
	}

	var buf bytes.Buffer
	if err := s.minifier.Minify("text/html", &buf, bytes.NewBufferString(markup)); err != nil {
		s.opts.Logger.Warn("html minification failed, serving original markup", zap.Error(err))
		return markup
	}
	return buf.String()
}

func (s *PageService) logFailure(input ServePageInput, rc core.RenderContext, err error) {
	fields := []zap.Field{
		zap.String("url", rc.URL),
		zap.String("request_id", input.RequestID),
		zap.Error(err),
	}

	var renderErr *core.RenderError
	if errors.As(err, &renderErr) && renderErr.Stack != "" {
		fields = append(fields, zap.String("stack", renderErr.Stack))
	}

	s.opts.Logger.Error("render failed", fields...)
}
