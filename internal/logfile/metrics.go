package logfile

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RolloverTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlog_rollover_total",
			Help: "Total number of segment rollovers executed.",
		},
	)

	PreallocationTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlog_preallocation_chunks_total",
			Help: "Total number of preallocation chunks written to segment files.",
		},
	)

	CheckpointTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlog_checkpoint_total",
			Help: "Total number of checkpoints persisted to metadata sidecar files.",
		},
	)

	CheckpointDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventlog_checkpoint_duration_seconds",
			Help:    "Duration of persisting a checkpoint, including fsync, in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)

	CorruptionTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlog_corruption_total",
			Help: "Total number of unexpected non-record op bytes encountered while reading.",
		},
	)

	PoolWaitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventlog_pool_checkout_wait_seconds",
			Help:    "Duration a caller waited for a random-read file handle to become available.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		RolloverTotal,
		PreallocationTotal,
		CheckpointTotal,
		CheckpointDuration,
		CorruptionTotal,
		PoolWaitDuration,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
