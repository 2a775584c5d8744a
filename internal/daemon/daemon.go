// Package daemon wires the queue, its HTTP introspection server, the
// Prometheus reporter, and the health checker into one long-running
// process.
package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tutu-network/splitqueue/internal/api"
	"github.com/tutu-network/splitqueue/internal/config"
	"github.com/tutu-network/splitqueue/internal/health"
	"github.com/tutu-network/splitqueue/internal/metrics"
	"github.com/tutu-network/splitqueue/internal/queue"
)

// Daemon owns the queue and its ambient services for the lifetime of one
// process.
type Daemon struct {
	Config config.Config
	Queue  *queue.Queue

	server  *api.Server
	checker *health.Checker
}

// New loads configuration and constructs the queue and its services.
func New() (*Daemon, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	q := queue.New(cfg.ToQueueConfig())
	srv := api.NewServer(q, cfg)
	if cfg.API.EnableMetrics {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		Queue:   q,
		server:  srv,
		checker: health.NewChecker(q, 10_000),
	}, nil
}

// EnableMetrics turns on the /metrics endpoint after construction, for
// callers that override config from CLI flags.
func (d *Daemon) EnableMetrics() {
	d.Config.API.EnableMetrics = true
	d.server.EnableMetrics()
}

// Serve runs the HTTP server, metrics reporter, and health checker until ctx
// is cancelled or the server fails.
func (d *Daemon) Serve(ctx context.Context) error {
	go d.checker.Run(ctx)
	go d.reportMetrics(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: d.server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (d *Daemon) reportMetrics(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	var prev []int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prev = metrics.Report(d.Queue, prev)
		}
	}
}
