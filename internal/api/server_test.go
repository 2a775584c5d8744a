package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tutu-network/splitqueue/internal/config"
	"github.com/tutu-network/splitqueue/internal/domain"
	"github.com/tutu-network/splitqueue/internal/queue"
)

func newTestServer() (*Server, *queue.Queue) {
	q := queue.New(queue.DefaultConfig())
	cfg := config.DefaultConfig()
	return NewServer(q, cfg), q
}

// statsTestSplit is a minimal domain.Split used only to populate queue depth
// for the /queue/stats assertions below.
type statsTestSplit struct {
	priority domain.Priority
}

func newStatsTestSplit() *statsTestSplit { return &statsTestSplit{} }

func (s *statsTestSplit) Priority() domain.Priority { return s.priority }
func (s *statsTestSplit) UpdateLevelPriority() bool  { return false }
func (s *statsTestSplit) SetReady()                  {}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestQueueStatsEndpoint(t *testing.T) {
	srv, q := newTestServer()
	assert.NoError(t, q.Offer(newStatsTestSplit()))

	req := httptest.NewRequest(http.MethodGet, "/queue/stats", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, float64(1), body["size"])
}

func TestQueueConfigEndpoint(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/queue/config", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2.0, body["level_time_multiplier"])
}

func TestMetricsEndpointDisabledByDefault(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusOK, rec.Code, "/metrics should not be mounted until EnableMetrics is called")
}

func TestMetricsEndpointEnabled(t *testing.T) {
	srv, _ := newTestServer()
	srv.EnableMetrics()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
