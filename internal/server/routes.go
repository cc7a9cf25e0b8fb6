package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/3-lines-studio/ssrkit/internal/usecase"
	"github.com/3-lines-studio/ssrkit/internal/version"
)

func (s *Server) registerRoutes(service *usecase.PageService) {
	pages := echo.WrapHandler(newPageChain(service, s.opts))
	s.echo.Match([]string{http.MethodGet, http.MethodHead}, "/*", pages)
}

func (s *Server) registerAdminRoutes() {
	s.admin.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.admin.GET("/health/live", s.handleLiveness)
	s.admin.GET("/version", handleVersion)
}

func (s *Server) handleLiveness(c echo.Context) error {
	if s.opts.Process != nil {
		if err := s.opts.Process.Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	})
}

func handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}
