// Package server serves the markdown preview pages and the render API. Every
// route runs behind an error boundary that turns faults into a fallback page.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ojroom/preview/internal/config"
	"github.com/ojroom/preview/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// HandlerFunc is a route handler. A returned error is classified and
// rendered by the boundary, the same way a panic is.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Server serves the preview pages backed by a render Pipeline.
type Server struct {
	cfg      config.ServerConfig
	pipeline *render.Pipeline
	logger   *zap.Logger
	pages    *template.Template

	showStack bool
	routes    map[string]map[string]HandlerFunc
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStackTraces includes runtime stack traces on the fallback page.
func WithStackTraces(show bool) Option {
	return func(s *Server) {
		s.showStack = show
	}
}

// New creates a Server with the built-in routes registered.
func New(cfg config.ServerConfig, opts render.Options, options ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: render.New(opts),
		logger:   zap.NewNop(),
		pages:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
		routes:   make(map[string]map[string]HandlerFunc),
	}
	for _, o := range options {
		o(s)
	}

	s.Handle(http.MethodGet, "/", s.handleHome)
	s.Handle(http.MethodPost, "/preview", s.handlePreview)
	s.Handle(http.MethodPost, "/api/render", s.handleAPIRender)
	s.Handle(http.MethodGet, "/healthz", s.handleHealth)
	return s
}

// Handle registers h for method on the exact path. Call it before Router.
func (s *Server) Handle(method, path string, h HandlerFunc) {
	methods, ok := s.routes[path]
	if !ok {
		methods = make(map[string]HandlerFunc)
		s.routes[path] = methods
	}
	methods[method] = h
}

// Router returns an http.Handler with registered routes. Paths without a
// route answer 404 and known paths with the wrong method answer 405, both
// through the boundary.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	for path, methods := range s.routes {
		pattern := path
		if path == "/" {
			pattern = "/{$}"
		}
		mux.Handle(pattern, s.boundary(dispatch(path, methods)))
	}
	mux.Handle("/", s.boundary(notFound))
	return mux
}

func dispatch(path string, methods map[string]HandlerFunc) HandlerFunc {
	allowed := make([]string, 0, len(methods))
	for m := range methods {
		allowed = append(allowed, m)
	}
	sort.Strings(allowed)

	return func(w http.ResponseWriter, r *http.Request) error {
		h, ok := methods[r.Method]
		if !ok && r.Method == http.MethodHead {
			h, ok = methods[http.MethodGet]
		}
		if !ok {
			for _, m := range allowed {
				w.Header().Add("Allow", m)
			}
			return methodNotAllowed(r.Method, path)
		}
		return h(w, r)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadTimeout:       time.Duration(s.cfg.ReadTimeout) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("preview server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("preview server stopped")
	return nil
}
