package queue

import (
	"container/heap"

	"github.com/tutu-network/splitqueue/internal/domain"
)

// levelHeap is a min-heap over a level's splits, ordered by LevelPriority,
// with O(log n) removal by identity via a position index. It implements
// container/heap.Interface directly; callers always go through the
// Offer/PollMin/Remove wrappers below rather than the raw heap verbs.
type levelHeap struct {
	items []domain.Split
	pos   map[domain.Split]int
}

func newLevelHeap() *levelHeap {
	return &levelHeap{pos: make(map[domain.Split]int)}
}

func (h *levelHeap) Len() int { return len(h.items) }

func (h *levelHeap) Less(i, j int) bool {
	return h.items[i].Priority().LevelPriority < h.items[j].Priority().LevelPriority
}

func (h *levelHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i]] = i
	h.pos[h.items[j]] = j
}

func (h *levelHeap) Push(x any) {
	s := x.(domain.Split)
	h.pos[s] = len(h.items)
	h.items = append(h.items, s)
}

func (h *levelHeap) Pop() any {
	n := len(h.items)
	s := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	delete(h.pos, s)
	return s
}

// Offer inserts a split into the level heap.
func (h *levelHeap) Offer(s domain.Split) {
	heap.Push(h, s)
}

// PollMin removes and returns the minimum-LevelPriority split, or false if
// the level is empty.
func (h *levelHeap) PollMin() (domain.Split, bool) {
	if h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(h).(domain.Split), true
}

// Remove extracts s if present, reporting whether it was found. Duplicate
// tolerant: removing an absent split is a silent no-op (reports false).
func (h *levelHeap) Remove(s domain.Split) bool {
	i, ok := h.pos[s]
	if !ok {
		return false
	}
	heap.Remove(h, i)
	return true
}

// Size returns the number of splits currently held.
func (h *levelHeap) Size() int { return h.Len() }
