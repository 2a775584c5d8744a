package queue

import (
	"math"

	"github.com/tutu-network/splitqueue/internal/domain"
)

// pollSplitLocked selects and extracts one split under the lock. ok is false
// when every level is empty — a normal condition, the caller should wait.
// A non-nil error reports domain.ErrInvariantViolation: the queue's own
// bookkeeping found a level non-empty and then failed to extract from it.
// Must be called with q.mu held.
func (q *Queue) pollSplitLocked() (domain.Split, int, bool, error) {
	if q.config.LevelAbsolutePriority {
		return q.pollAbsoluteLocked()
	}
	return q.pollTimeBalancedLocked()
}

// pollAbsoluteLocked walks levels 0..L-1 and returns the first non-empty
// level's minimum-priority split: strict priority, lowest level wins.
func (q *Queue) pollAbsoluteLocked() (domain.Split, int, bool, error) {
	for i, lv := range q.levels {
		if s, ok := lv.heap.PollMin(); ok {
			return s, i, true, nil
		}
	}
	return nil, 0, false, nil
}

// pollTimeBalancedLocked targets a geometric CPU-share distribution: level i
// targets levelTimeMultiplier times the scheduled time of level i+1. The
// level furthest behind its target (highest ratio) is selected.
func (q *Queue) pollTimeBalancedLocked() (domain.Split, int, bool, error) {
	m := q.config.LevelTimeMultiplier
	targetScheduledTime := float64(q.updateLevelTimesLocked())

	worstRatio := 1.0
	selectedLevel := -1
	for level, lv := range q.levels {
		if lv.heap.Size() > 0 {
			var ratio float64
			s := lv.scheduledNanos
			if s == 0 {
				ratio = 0.0
			} else {
				ratio = targetScheduledTime / float64(s)
			}
			if selectedLevel == -1 || ratio > worstRatio {
				worstRatio = ratio
				selectedLevel = level
			}
		}
		targetScheduledTime /= m
	}

	if selectedLevel == -1 {
		return nil, 0, false, nil
	}
	s, ok := q.levels[selectedLevel].heap.PollMin()
	if !ok {
		// The level was observed non-empty moments ago under the same lock
		// hold; this can't happen without a concurrency bug elsewhere.
		return nil, 0, false, domain.ErrInvariantViolation
	}
	return s, selectedLevel, true, nil
}

// updateLevelTimesLocked implements starvation avoidance: it derives a
// consistent set of expected scheduled-time targets (E_i(A) = A / m^i) from
// the anchor A, raising empty levels' S[i] up to their expected value so a
// level that has been idle doesn't dominate selection the instant work
// arrives. Must be called with q.mu held. Returns the final A.
func (q *Queue) updateLevelTimesLocked() int64 {
	m := q.config.LevelTimeMultiplier
	L := len(q.levels)

	anchor := float64(q.levels[0].scheduledNanos)

	// Level 0 is normally the anchor source. If it currently has no waiting
	// splits its S[0] may be stale (no charges have landed recently), so
	// scan non-empty deeper levels for one whose real usage — projected
	// back to level 0's timeframe — exceeds the naive anchor, and raise to
	// that; this keeps the anchor consistent with levels that are actually
	// running.
	if q.levels[0].heap.Size() == 0 {
		for i := 1; i < L; i++ {
			if q.levels[i].heap.Size() == 0 {
				continue
			}
			projected := float64(q.levels[i].scheduledNanos) * math.Pow(m, float64(i))
			if projected > anchor {
				anchor = projected
			}
		}
	}

	for i := 1; i < L; i++ {
		if q.levels[i].heap.Size() != 0 {
			continue // non-empty levels keep their real scheduled time
		}
		expected := int64(anchor / math.Pow(m, float64(i)))
		if q.levels[i].scheduledNanos < expected {
			q.levels[i].scheduledNanos = expected
		}
	}

	anchorNanos := int64(anchor)
	q.levels[0].scheduledNanos = anchorNanos
	return anchorNanos
}
