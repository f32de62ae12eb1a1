// Package api serves the dashboard over HTTP: the HTML page, the JSON
// reports and the Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"complaints-dashboard/metrics"
	"complaints-dashboard/models"
	"complaints-dashboard/report"
	"complaints-dashboard/services"
	"complaints-dashboard/utils"
)

// Server exposes one loaded dashboard. Handlers only read the dashboard, so
// concurrent requests need no locking.
type Server struct {
	dashboard *services.Dashboard
	metrics   *metrics.Metrics
	loc       *time.Location
	logger    *utils.Logger
}

// NewServer creates a Server. m may be nil, in which case /metrics is not
// registered.
func NewServer(d *services.Dashboard, m *metrics.Metrics, loc *time.Location, logger *utils.Logger) *Server {
	if loc == nil {
		loc = time.UTC
	}
	return &Server{dashboard: d, metrics: m, loc: loc, logger: logger}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)
	mux.HandleFunc("GET /v1/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /v1/view", s.handleView)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return mux
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"complaints": s.dashboard.Dataset().Len(),
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}

	page, err := report.HTML(s.dashboard.Catalog(), s.dashboard.Evaluate(sel))
	if err != nil {
		s.logger.Error("[api] Render dashboard: %v", err)
		s.writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		s.logger.Warn("[api] Write dashboard: %v", err)
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dashboard.Catalog())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.dashboard.Evaluate(sel))
}

// viewResponse is returned by GET /v1/view.
type viewResponse struct {
	Selection  models.Selection   `json:"selection"`
	Count      int                `json:"count"`
	Complaints []models.Complaint `json:"complaints"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	view := s.dashboard.View(sel)
	s.writeJSON(w, http.StatusOK, viewResponse{Selection: sel, Count: len(view), Complaints: view})
}

// selection parses the control values from the query string. On failure it
// writes a 400 and returns false.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) (models.Selection, bool) {
	q := r.URL.Query()
	sel, err := services.ParseSelection(s.dashboard.Catalog(), services.SelectionInput{
		Entity:    q.Get("entity"),
		Region:    q.Get("region"),
		Status:    q.Get("status"),
		MaxLength: q.Get("max_length"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}, s.loc)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSelection) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return models.Selection{}, false
		}
		s.logger.Error("[api] Parse selection: %v", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return models.Selection{}, false
	}
	return sel, true
}

// --- helpers ---

// writeJSON serializes v as JSON with the given HTTP status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("[api] Failed to encode response: %v", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
