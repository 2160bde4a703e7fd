package http

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finboard/internal/log"
	"finboard/internal/report"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleIndex renders the page for the selected menu entry.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.URL.Query().Get("menu")

	page, err := s.dash.Interact(ctx, slug)
	if err != nil {
		status := statusFor(err)
		log.FromContext(ctx).WarnContext(ctx, "Dashboard interaction failed",
			log.FieldMenu, slug, log.FieldError, err, log.FieldErrorType, report.ErrorType(err))
		if status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.render(w, r, status, "index.html", indexView{
			Menu:   menuView(s.dash.Menu(), slug),
			Notice: noticeFor(err),
		})
		return
	}

	s.render(w, r, http.StatusOK, "index.html", indexView{
		Menu:        menuView(s.dash.Menu(), page.Menu.Slug),
		Title:       page.Menu.Label,
		Sections:    sectionViews(page.Sections),
		GeneratedAt: page.GeneratedAt.Format("02/01/2006 15:04"),
	})
}

// handleReportPartial renders one report section, for in-place refresh.
func (s *Server) handleReportPartial(w http.ResponseWriter, r *http.Request) {
	kind := report.Kind(chi.URLParam(r, "kind"))

	tbl, err := s.dash.Report(r.Context(), kind)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.render(w, r, status, "section", failedSection(kind, err))
		return
	}
	s.render(w, r, http.StatusOK, "section", tableView(tbl))
}

// handleReportJSON serves the chart payload of one report.
func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	kind := report.Kind(chi.URLParam(r, "kind"))

	tbl, err := s.dash.Report(r.Context(), kind)
	if err != nil {
		status := statusFor(err)
		writeError(w, status, report.ErrorType(err), noticeFor(err))
		return
	}
	writeJSON(w, http.StatusOK, newChartPayload(tbl))
}

// render buffers the template so a failed execution can still answer 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err, "template", name, log.FieldOperation, log.OpRender)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
