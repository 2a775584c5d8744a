// Package metrics provides Prometheus metrics for splitqueued: per-level
// scheduled time, dispatch counts, and queue depth.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LevelScheduledSeconds tracks S[i], the cumulative scheduled CPU time
// charged to each level.
var LevelScheduledSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "splitqueue",
	Name:      "level_scheduled_seconds",
	Help:      "Cumulative scheduled CPU time charged to each level.",
}, []string{"level"})

// LevelSelectedTotal tracks the per-level dispatch counters.
var LevelSelectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "splitqueue",
	Name:      "level_selected_total",
	Help:      "Total splits dispatched from each level.",
}, []string{"level"})

// LevelQueueDepth tracks the number of splits currently waiting per level.
var LevelQueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "splitqueue",
	Name:      "level_queue_depth",
	Help:      "Number of splits currently waiting in each level.",
}, []string{"level"})

// QueueSize tracks the total number of waiting splits across all levels.
var QueueSize = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "splitqueue",
	Name:      "queue_size",
	Help:      "Total number of splits currently waiting across all levels.",
})

// TakeLatency tracks how long callers spend blocked in Take.
var TakeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "splitqueue",
	Name:      "take_latency_seconds",
	Help:      "Time a worker spent blocked in Take before a split was returned.",
	Buckets:   prometheus.DefBuckets,
})
