// Package http serves the dashboard: the menu page, per-report HTML
// partials and chart payloads, plus health, readiness and metrics.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"finboard/internal/dashboard"
	"finboard/internal/log"
	"finboard/internal/metrics"
	"finboard/internal/middleware/security"
	"finboard/internal/middleware/trace"
	appweb "finboard/web"
)

const readyTimeout = 2 * time.Second

// Deps are the collaborators the server needs. Ready and Metrics may be nil.
type Deps struct {
	Dashboard *dashboard.Service
	Ready     func(ctx context.Context) error
	Metrics   *metrics.Metrics
	Logger    *log.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	dash      *dashboard.Service
	ready     func(ctx context.Context) error
	logger    *log.Logger
}

func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		templates: template.Must(template.ParseFS(appweb.TemplatesFS, "templates/*.html")),
		dash:      deps.Dashboard,
		ready:     deps.Ready,
		logger:    logger,
	}
	s.Handler = s.routes(deps.Metrics)
	return s
}

func (s *Server) routes(m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(trace.NewMiddleware(s.logger, clientIP).Middleware)
	r.Use(log.Middleware(s.logger))
	r.Use(log.RequestIDMiddleware(trace.RequestIDFromRequest))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Group(func(r chi.Router) {
		r.Use(security.Headers(security.DefaultHeadersConfig()))
		r.Use(security.NoStore)

		r.Get("/", s.handleIndex)
		r.Get("/ui/reports/{kind}", s.handleReportPartial)
		r.Get("/api/reports/{kind}", s.handleReportJSON)
	})

	return r
}

// clientIP is the peer address after middleware.RealIP rewrote it.
func clientIP(r *http.Request) string {
	return r.RemoteAddr
}
