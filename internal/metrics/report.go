package metrics

import (
	"strconv"

	"github.com/tutu-network/splitqueue/internal/queue"
)

// Report snapshots q's introspection surface into the package's gauges and
// counters, returning the per-level selected counts observed this call so
// the caller can pass them back in as prevSelected next time.
func Report(q *queue.Queue, prevSelected []int64) []int64 {
	scheduled := q.LevelScheduledTime()
	selected := q.SelectedLevelCounters()
	depths := q.LevelQueueDepths()

	for i := range scheduled {
		label := strconv.Itoa(i)
		LevelScheduledSeconds.WithLabelValues(label).Set(float64(scheduled[i]) / 1e9)
		LevelQueueDepth.WithLabelValues(label).Set(float64(depths[i]))

		if prevSelected != nil && i < len(prevSelected) {
			if delta := selected[i] - prevSelected[i]; delta > 0 {
				LevelSelectedTotal.WithLabelValues(label).Add(float64(delta))
			}
		}
	}
	QueueSize.Set(float64(q.Size()))
	return selected
}
