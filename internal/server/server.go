package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/3-lines-studio/ssrkit/internal/adapters/http"
	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/3-lines-studio/ssrkit/internal/usecase"
)

const defaultShutdownTimeout = 10 * time.Second

// Process is a supervised child the server depends on. Its exit stops Run and
// fails the liveness check.
type Process interface {
	Done() <-chan struct{}
	Err() error
}

type Options struct {
	Addr            string
	AdminAddr       string // empty disables the admin listener
	DistDir         string
	NotFoundPolicy  core.NotFoundPolicy
	ShutdownTimeout time.Duration
	Debug           bool // detailed echo error bodies; never in production
	Process         Process
	Logger          *zap.Logger
}

type Server struct {
	echo      *echo.Echo
	admin     *echo.Echo
	opts      Options
	logger    *zap.Logger
	startTime time.Time
}

func New(service *usecase.PageService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = opts.Debug

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Logger))

	srv := &Server{
		echo:      e,
		opts:      opts,
		logger:    opts.Logger,
		startTime: time.Now(),
	}

	srv.registerRoutes(service)

	if opts.AdminAddr != "" {
		srv.admin = echo.New()
		srv.admin.HideBanner = true
		srv.admin.HidePort = true
		srv.admin.Use(middleware.Recover())
		srv.registerAdminRoutes()
	}

	return srv
}

// Handler exposes the public routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// AdminHandler returns nil when the admin listener is disabled.
func (s *Server) AdminHandler() http.Handler {
	if s.admin == nil {
		return nil
	}
	return s.admin
}

// Run serves until ctx is cancelled or a listener fails, then shuts every
// listener down within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", zap.String("addr", s.opts.Addr))
		return ignoreClosed(s.echo.Start(s.opts.Addr))
	})

	if s.admin != nil {
		g.Go(func() error {
			s.logger.Info("admin listening", zap.String("addr", s.opts.AdminAddr))
			return ignoreClosed(s.admin.Start(s.opts.AdminAddr))
		})
	}

	if s.opts.Process != nil {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			case <-s.opts.Process.Done():
				return fmt.Errorf("renderer stopped serving: %w", s.opts.Process.Err())
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if s.admin != nil {
			if err := s.admin.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// newPageChain builds static -> render -> not found.
func newPageChain(service *usecase.PageService, opts Options) http.Handler {
	pages := httpadapter.NewPageHandler(service, opts.NotFoundPolicy, http.NotFoundHandler())
	if opts.DistDir == "" {
		return pages
	}
	return httpadapter.NewAssetHandler(opts.DistDir, pages)
}
