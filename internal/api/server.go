// Package api provides the splitqueued HTTP introspection server: health,
// queue stats/config, and an optional Prometheus endpoint.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tutu-network/splitqueue/internal/config"
	"github.com/tutu-network/splitqueue/internal/queue"
)

// Server is the splitqueued HTTP API server.
type Server struct {
	q              *queue.Queue
	cfg            config.Config
	metricsEnabled bool
}

// NewServer creates a new API server over q.
func NewServer(q *queue.Queue, cfg config.Config) *Server {
	return &Server{q: q, cfg: cfg}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/queue", func(r chi.Router) {
		r.Get("/stats", s.handleQueueStats)
		r.Get("/config", s.handleQueueConfig)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleQueueStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"size":                s.q.Size(),
		"selectedLevelCounts": s.q.SelectedLevelCounters(),
		"levelScheduledNanos": s.q.LevelScheduledTime(),
		"levelQueueDepths":    s.q.LevelQueueDepths(),
		"levelMinPriority":    s.q.LevelMinPriority(),
	})
}

func (s *Server) handleQueueConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Queue)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// corsMiddleware adds permissive CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
