package queue

// Config is immutable once a Queue is constructed.
type Config struct {
	// LevelAbsolutePriority selects strict level-order draining (lowest
	// level first) instead of the default time-balanced selection.
	LevelAbsolutePriority bool

	// LevelTimeMultiplier (m) is the target ratio of scheduled time between
	// adjacent levels: level i targets m times the scheduled time of level
	// i+1. Strictly > 1.0 in practice; values <= 1.0 are misconfiguration
	// and are not validated here (per spec §6).
	LevelTimeMultiplier float64

	// LevelThresholdSeconds are the L level boundaries in seconds,
	// strictly increasing and starting at 0. Defaults to
	// DefaultLevelThresholdSeconds.
	LevelThresholdSeconds []int64
}

// DefaultConfig returns the canonical 5-level, time-balanced configuration.
func DefaultConfig() Config {
	return Config{
		LevelAbsolutePriority: false,
		LevelTimeMultiplier:   2.0,
		LevelThresholdSeconds: append([]int64(nil), DefaultLevelThresholdSeconds...),
	}
}

func (c Config) levels() int {
	return len(c.LevelThresholdSeconds)
}
