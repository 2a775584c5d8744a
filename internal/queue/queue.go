// Package queue implements the multilevel feedback scheduling queue: the
// level organization, the time-balanced and absolute selection algorithms,
// and the priority/level transition bookkeeping a worker thread drives after
// every execution quantum.
package queue

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/tutu-network/splitqueue/internal/domain"
)

// levelState holds one level's bookkeeping. heap and scheduledNanos live
// under the queue's lock; minPriority and selectedCount are independently
// thread-safe so readers never need the lock to observe them.
type levelState struct {
	heap           *levelHeap
	scheduledNanos int64 // S[i]

	minPriority   atomic.Int64 // M[i], sentinel -1 means uninitialized
	selectedCount atomic.Int64
}

func newLevelState() *levelState {
	ls := &levelState{heap: newLevelHeap()}
	ls.minPriority.Store(-1)
	return ls
}

// Queue is the multilevel feedback scheduling queue. One mutex guards the
// level queues and S[]; one condition variable wakes a single Take waiter
// per Offer. Safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	config Config
	levels []*levelState
}

// New constructs a Queue. An empty or zero-value cfg.LevelThresholdSeconds
// falls back to DefaultConfig.
func New(cfg Config) *Queue {
	if len(cfg.LevelThresholdSeconds) < 2 {
		cfg = DefaultConfig()
	}
	q := &Queue{
		config: cfg,
		levels: make([]*levelState, cfg.levels()),
	}
	for i := range q.levels {
		q.levels[i] = newLevelState()
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Offer marks s ready and inserts it into the level queue indexed by its
// current priority's level, waking one Take waiter.
func (q *Queue) Offer(s domain.Split) error {
	if s == nil {
		return domain.ErrNilSplit
	}
	q.mu.Lock()
	s.SetReady()
	level := int(s.Priority().Level)
	q.levels[level].heap.Offer(s)
	q.mu.Unlock()
	q.cond.Signal()
	return nil
}

// offerLocked re-inserts s without signaling; used internally by Take when
// reconciling a stale priority, where the caller already holds the lock and
// is about to resume its own selection loop.
func (q *Queue) offerLocked(s domain.Split) {
	level := int(s.Priority().Level)
	q.levels[level].heap.Offer(s)
}

// Take blocks until a split can be selected, or until ctx is cancelled. A
// cancelled Take returns domain.ErrInterrupted and mutates no state. If
// selection ever finds a level empty that it had just observed non-empty
// under the same lock hold, Take returns domain.ErrInvariantViolation rather
// than silently looping back to wait forever.
func (q *Queue) Take(ctx context.Context) (domain.Split, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrInterrupted
	}

	// sync.Cond has no native cancellation; a watcher goroutine wakes the
	// waiter by broadcasting under the lock when ctx is done.
	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-ctx.Done():
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		case <-stopWatch:
		}
	}()

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return nil, domain.ErrInterrupted
		}

		r, level, ok, err := q.pollSplitLocked()
		if err != nil {
			return nil, err
		}
		if !ok {
			q.cond.Wait()
			continue
		}

		if r.UpdateLevelPriority() {
			// Aged into a new level while waiting; re-offer and restart
			// selection rather than hand back a stale priority.
			q.offerLocked(r)
			continue
		}

		q.levels[level].minPriority.Store(r.Priority().LevelPriority)
		q.levels[level].selectedCount.Inc()
		return r, nil
	}
}

// UpdatePriority charges a just-consumed quantum to S[] and returns the
// split's new Priority, rebasing within-level priority when the quantum
// pushed the split across a level boundary.
func (q *Queue) UpdatePriority(oldPriority domain.Priority, quantaNanos, scheduledNanos int64) domain.Priority {
	oldLevel := int(oldPriority.Level)
	newLevel := int(ComputeLevel(scheduledNanos, q.config.LevelThresholdSeconds))
	levelContribution := quantaNanos
	if levelContribution > int64(LevelContributionCap) {
		levelContribution = int64(LevelContributionCap)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if oldLevel == newLevel {
		q.levels[oldLevel].scheduledNanos += levelContribution
		return domain.Priority{Level: domain.Level(oldLevel), LevelPriority: oldPriority.LevelPriority + quantaNanos}
	}

	remaining := levelContribution
	accountedBelowNew := int64(0)
	for k := oldLevel; k < newLevel; k++ {
		width := levelWidthNanos(q.config.LevelThresholdSeconds, k)
		charge := width
		if charge > remaining {
			charge = remaining
		}
		q.levels[k].scheduledNanos += charge
		accountedBelowNew += charge
		remaining -= charge
	}
	q.levels[newLevel].scheduledNanos += remaining

	base := q.levels[newLevel].minPriority.Load()
	if base < 0 {
		base = scheduledNanos
		q.levels[newLevel].minPriority.Store(base)
	}
	remainingTaskTime := quantaNanos - accountedBelowNew
	return domain.Priority{Level: domain.Level(newLevel), LevelPriority: base + remainingTaskTime}
}

// Remove extracts s from whichever level currently holds it, reporting
// whether it was found. A silent no-op if s isn't present.
func (q *Queue) Remove(s domain.Split) bool {
	if s == nil {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, lv := range q.levels {
		if lv.heap.Remove(s) {
			return true
		}
	}
	return false
}

// RemoveAll removes every split in splits, ignoring ones not present.
func (q *Queue) RemoveAll(splits []domain.Split) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, s := range splits {
		if s == nil {
			continue
		}
		for _, lv := range q.levels {
			if lv.heap.Remove(s) {
				break
			}
		}
	}
}

// Size returns the total number of splits currently waiting across all
// levels.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	total := 0
	for _, lv := range q.levels {
		total += lv.heap.Size()
	}
	return total
}

// SelectedLevelCounters returns the per-level dispatch counts. Monotone,
// never reset by the queue.
func (q *Queue) SelectedLevelCounters() []int64 {
	out := make([]int64, len(q.levels))
	for i, lv := range q.levels {
		out[i] = lv.selectedCount.Load()
	}
	return out
}

// LevelQueueDepths returns the number of splits currently waiting in each
// level.
func (q *Queue) LevelQueueDepths() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]int, len(q.levels))
	for i, lv := range q.levels {
		out[i] = lv.heap.Size()
	}
	return out
}

// LevelScheduledTime exposes S[] for introspection and testing.
func (q *Queue) LevelScheduledTime() []int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]int64, len(q.levels))
	for i, lv := range q.levels {
		out[i] = lv.scheduledNanos
	}
	return out
}

// LevelMinPriority exposes M[] for introspection and testing.
func (q *Queue) LevelMinPriority() []int64 {
	out := make([]int64, len(q.levels))
	for i, lv := range q.levels {
		out[i] = lv.minPriority.Load()
	}
	return out
}

// Levels returns the configured number of levels, L.
func (q *Queue) Levels() int { return len(q.levels) }
