package queue

import (
	"time"

	"github.com/tutu-network/splitqueue/internal/domain"
)

// Level aliases the domain level index so this package can name it without
// every call site spelling out domain.Level.
type Level = domain.Level

// DefaultLevelThresholdSeconds is the canonical level boundary table: level i
// starts once a split's cumulative scheduled time reaches T_i seconds.
var DefaultLevelThresholdSeconds = []int64{0, 1, 10, 60, 300}

// LevelContributionCap bounds a single quantum's contribution to any level's
// scheduled-time accounting, protecting the fairness math from a split stuck
// on a hung read.
const LevelContributionCap = 30 * time.Second

// ComputeLevel returns the largest level index i such that
// seconds(scheduledNanos) >= thresholds[i], treating thresholds[len-1] as the
// last finite boundary and +Inf beyond it. thresholds must be strictly
// increasing and start at 0; neither this function nor Config checks this.
func ComputeLevel(scheduledNanos int64, thresholds []int64) Level {
	seconds := scheduledNanos / int64(time.Second)
	level := 0
	for i := 1; i < len(thresholds); i++ {
		if seconds < thresholds[i] {
			break
		}
		level = i
	}
	return Level(level)
}

// levelWidthNanos returns the width, in nanoseconds, of level k: the gap
// between its threshold and the next level's threshold. The last level has
// no finite width (it never ends), callers must not request it.
func levelWidthNanos(thresholds []int64, k int) int64 {
	return (thresholds[k+1] - thresholds[k]) * int64(time.Second)
}
