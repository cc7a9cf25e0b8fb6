package http

import (
	"net/http"

	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/3-lines-studio/ssrkit/internal/usecase"
)

const headerRequestID = "X-Request-Id"

type PageHandler struct {
	service *usecase.PageService
	policy  core.NotFoundPolicy
	next    http.Handler
}

// NewPageHandler renders every request through service. next receives requests
// the renderer reports as not found when policy is NotFoundFallthrough.
func NewPageHandler(service *usecase.PageService, policy core.NotFoundPolicy, next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return &PageHandler{
		service: service,
		policy:  policy,
		next:    next,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	input := usecase.ServePageInput{
		RequestURI: req.URL.RequestURI(),
		RequestID:  requestID(w, req),
	}

	output := h.service.ServePage(req.Context(), input)

	switch output.Action {
	case core.ActionRender:
		h.serveHTML(w, output.HTML)

	case core.ActionNotFound:
		h.serveNotFound(w, req)

	default:
		h.serveError(w)
	}
}

func (h *PageHandler) serveHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (h *PageHandler) serveNotFound(w http.ResponseWriter, req *http.Request) {
	if h.policy == core.NotFoundFallthrough {
		h.next.ServeHTTP(w, req)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(http.StatusText(http.StatusNotFound)))
}

// serveError writes the fixed error body; the service has already logged the cause.
func (h *PageHandler) serveError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(core.InternalErrorMessage))
}

func requestID(w http.ResponseWriter, req *http.Request) string {
	if id := w.Header().Get(headerRequestID); id != "" {
		return id
	}
	return req.Header.Get(headerRequestID)
}
