package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apierrors "github.com/ojroom/preview/internal/errors"
)

// bufferedResponse holds a handler's output until it returns, so a fault
// can replace a half-written page with the fallback screen.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) flush(w http.ResponseWriter) int {
	for k, v := range b.header {
		w.Header()[k] = v
	}
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(b.body.Bytes())
	return status
}

// boundary runs h and renders any fault it produces. Panics and returned
// errors are both classified; the fallback page replaces whatever h wrote.
func (s *Server) boundary(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		buf := newBufferedResponse()

		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			s.renderFault(w, r, buf, apierrors.ClassifyPanic(v), start)
		}()

		if err := h(buf, r); err != nil {
			s.renderFault(w, r, buf, apierrors.Classify(err), start)
			return
		}
		status := buf.flush(w)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) renderFault(w http.ResponseWriter, r *http.Request, buf *bufferedResponse, f apierrors.Fault, start time.Time) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", f.StatusCode()),
		zap.String("fault", f.Message()),
		zap.Duration("elapsed", time.Since(start)),
	}
	switch x := f.(type) {
	case *apierrors.RouteFault:
		s.logger.Info("route fault", fields...)
	case *apierrors.RuntimeFault:
		if x.Stack != "" {
			fields = append(fields, zap.String("stack", x.Stack))
		}
		s.logger.Error("runtime fault", fields...)
	case *apierrors.UnknownFault:
		s.logger.Error("unknown fault", fields...)
	}

	// Allow is the only header that survives from the failed handler.
	if allow := buf.header.Values("Allow"); len(allow) > 0 {
		w.Header()["Allow"] = allow
	}
	w.Header().Set("Cache-Control", "no-store")

	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, f.StatusCode(), map[string]any{
			"error":  f.Message(),
			"status": f.StatusCode(),
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(f.StatusCode())
	if err := s.pages.ExecuteTemplate(w, "fallback.html", s.fallbackPage(f)); err != nil {
		s.logger.Error("fallback page failed", zap.Error(err))
	}
}

type fallbackPage struct {
	Title   string
	Message string
	Stack   string
}

func (s *Server) fallbackPage(f apierrors.Fault) fallbackPage {
	page := fallbackPage{Message: f.Message()}
	switch x := f.(type) {
	case *apierrors.RouteFault:
		page.Title = fmt.Sprintf("%d %s", x.Status, x.StatusText)
	case *apierrors.RuntimeFault:
		page.Title = "Something went wrong"
		if s.showStack {
			page.Stack = x.Stack
		}
	case *apierrors.UnknownFault:
		page.Title = "Unexpected error"
	}
	return page
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, r *http.Request) error {
	return apierrors.NotFound(r.URL.Path)
}

func methodNotAllowed(method, path string) error {
	return apierrors.MethodNotAllowed(method, path)
}
