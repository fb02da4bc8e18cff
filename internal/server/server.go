// Package server exposes the interception pipeline over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phantomsec/phantom/internal/breach"
	"github.com/phantomsec/phantom/internal/logging"
	"github.com/phantomsec/phantom/internal/metrics"
	"github.com/phantomsec/phantom/internal/trace"
)

// Server wires the interceptor, breach client, and trace store behind a
// chi router.
type Server struct {
	interceptor  *trace.Interceptor
	breach       *breach.Client
	logger       *logging.Logger
	historyLimit int
}

// Config collects the server dependencies. Nil fields fall back to
// working defaults so tests can construct a Server piecemeal.
type Config struct {
	Interceptor *trace.Interceptor
	Breach      *breach.Client
	Logger      *logging.Logger

	// HistoryLimit caps /api/trace responses when the request does not
	// carry a limit. Zero means 10.
	HistoryLimit int
}

func New(cfg Config) *Server {
	s := &Server{
		interceptor:  cfg.Interceptor,
		breach:       cfg.Breach,
		logger:       cfg.Logger,
		historyLimit: cfg.HistoryLimit,
	}
	if s.historyLimit == 0 {
		s.historyLimit = 10
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.interceptor == nil {
		s.interceptor = trace.NewInterceptor(trace.NewStore(), s.logger, nil)
	}
	if s.breach == nil {
		s.breach = breach.NewClient()
	}
	return s
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/check-breach", s.handleCheckBreach)
		r.Get("/trace", s.handleTraceHistory)
		r.Get("/trace/{traceID}", s.handleTraceDetail)
		r.Get("/health", s.handleHealth)
	})
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
