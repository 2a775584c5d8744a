// Package health provides a periodic checker that watches the scheduling
// queue for sustained overload, built as a set of checks each with an
// optional recovery action.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tutu-network/splitqueue/internal/queue"
)

// Check defines a single health check with an optional recovery action.
type Check struct {
	Name      string
	CheckFn   func(ctx context.Context) error
	RecoverFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs periodic health checks.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
	interval time.Duration
}

// NewChecker creates a health checker watching q for sustained overload: the
// queue staying at or above maxDepth across consecutive checks, which
// signals workers aren't draining it fast enough.
func NewChecker(q *queue.Queue, maxDepth int) *Checker {
	overloadStreak := 0
	return &Checker{
		interval: 30 * time.Second,
		checks: []Check{
			{
				Name: "queue_depth",
				CheckFn: func(ctx context.Context) error {
					size := q.Size()
					if size < maxDepth {
						overloadStreak = 0
						return nil
					}
					overloadStreak++
					if overloadStreak >= 3 {
						return fmt.Errorf("queue size %d at or above %d for %d consecutive checks", size, maxDepth, overloadStreak)
					}
					return nil
				},
				RecoverFn: func(ctx context.Context) error {
					return nil // no automatic remediation; the outer executor owns capacity
				},
			},
		},
	}
}

// Run starts the health check loop. Call in a goroutine.
func (c *Checker) Run(ctx context.Context) {
	c.runAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runAll(ctx)
		}
	}
}

func (c *Checker) runAll(ctx context.Context) {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{
			Name:      check.Name,
			CheckedAt: time.Now(),
		}
		if err := check.CheckFn(ctx); err != nil {
			s.Healthy = false
			s.Error = err.Error()
			if check.RecoverFn != nil {
				_ = check.RecoverFn(ctx)
			}
		} else {
			s.Healthy = true
		}
		statuses[i] = s
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()
}

// Statuses returns the latest health check results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Status, len(c.statuses))
	copy(result, c.statuses)
	return result
}

// IsHealthy returns true if all checks passed on the last run.
func (c *Checker) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}
