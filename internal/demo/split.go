// Package demo provides a concrete domain.Split implementation and a worker
// pool that drives splits through a queue.Queue, for exercising the queue
// end-to-end and for the bench CLI subcommand.
package demo

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tutu-network/splitqueue/internal/domain"
	"github.com/tutu-network/splitqueue/internal/queue"
)

// Split is a unit of synthetic work. It does not execute anything itself;
// whoever runs a quantum on its behalf reports the CPU time consumed through
// Charge.
type Split struct {
	ID uuid.UUID

	mu             sync.Mutex
	priority       domain.Priority
	scheduledNanos int64
	ready          bool

	q *queue.Queue
}

// NewSplit creates a split admitted at level 0 with levelPriority 0, ready
// to be offered to q.
func NewSplit(q *queue.Queue) *Split {
	return &Split{
		ID: uuid.New(),
		q:  q,
	}
}

// Priority returns the split's current (level, levelPriority) pair.
func (s *Split) Priority() domain.Priority {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priority
}

// UpdateLevelPriority recomputes the split's priority from scheduledNanos,
// reporting whether the level changed since the last read.
func (s *Split) UpdateLevelPriority() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	newLevel := queue.ComputeLevel(s.scheduledNanos, queue.DefaultLevelThresholdSeconds)
	if newLevel == s.priority.Level {
		return false
	}
	s.priority.Level = newLevel
	return true
}

// SetReady marks the split admissible. Called by Queue.Offer on every offer.
func (s *Split) SetReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// Charge applies the result of one execution quantum: quantaNanos is the
// wall-measured CPU time just consumed, and the split's cumulative
// scheduledNanos grows by the same amount. Returns the split's new priority,
// as computed by the owning queue's UpdatePriority.
func (s *Split) Charge(quantaNanos int64) domain.Priority {
	s.mu.Lock()
	oldPriority := s.priority
	s.scheduledNanos += quantaNanos
	scheduledNanos := s.scheduledNanos
	s.mu.Unlock()

	newPriority := s.q.UpdatePriority(oldPriority, quantaNanos, scheduledNanos)

	s.mu.Lock()
	s.priority = newPriority
	s.mu.Unlock()
	return newPriority
}
