package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrNilSplit is returned by Offer when handed a nil split. Remove takes
	// no error path: it reports a nil split as not found (false).
	ErrNilSplit = errors.New("splitqueue: split must not be nil")

	// ErrInterrupted is returned by Take when its context is cancelled
	// while waiting. Distinct from a real failure; safe to retry.
	ErrInterrupted = errors.New("splitqueue: take interrupted")

	// ErrInvariantViolation reports a state the queue's own bookkeeping
	// should make impossible, e.g. pollSplit selecting a level it had just
	// observed non-empty under the lock. The queue makes no attempt to
	// self-repair.
	ErrInvariantViolation = errors.New("splitqueue: internal invariant violation")
)
