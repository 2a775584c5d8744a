package demo

import (
	"context"
	"testing"
	"time"

	"github.com/tutu-network/splitqueue/internal/queue"
)

func TestPoolRetiresAllSubmittedTasks(t *testing.T) {
	q := queue.New(queue.DefaultConfig())
	pool := NewPool(q, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Run(ctx)

	const n = 10
	for i := 0; i < n; i++ {
		if err := pool.Submit(2, int64(2*time.Millisecond)); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	deadline := time.After(5 * time.Second)
	for pool.Retired() < n {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for retirement: %d/%d", pool.Retired(), n)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	pool.Wait()

	if q.Size() != 0 {
		t.Errorf("queue not drained: size = %d", q.Size())
	}
}

func TestSplitAgesAcrossLevelsAsItAccumulatesTime(t *testing.T) {
	q := queue.New(queue.DefaultConfig())
	s := NewSplit(q)
	if err := q.Offer(s); err != nil {
		t.Fatalf("Offer: %v", err)
	}

	if lvl := s.Priority().Level; lvl != 0 {
		t.Fatalf("new split level = %d, want 0", lvl)
	}

	newPriority := s.Charge(int64(2 * time.Second))
	if newPriority.Level != 1 {
		t.Fatalf("level after charging 2s = %d, want 1", newPriority.Level)
	}
	if lvl := s.Priority().Level; lvl != 1 {
		t.Errorf("split's stored level = %d, want 1", lvl)
	}

	// UpdateLevelPriority now agrees with the already-applied charge; no
	// further change is pending.
	if s.UpdateLevelPriority() {
		t.Error("UpdateLevelPriority reported a change immediately after Charge")
	}
}
