package pool

import "github.com/zenria/redis-async-pool/lib/metrics"

// Pool utilization metrics
var (
	// PoolConnectionsMax is the maximum pool capacity.
	PoolConnectionsMax = metrics.NewGauge(
		"rpool_connections_max",
		"Maximum number of connections in the pool",
	)
	// PoolConnectionsOpen is the current number of open connections.
	PoolConnectionsOpen = metrics.NewGauge(
		"rpool_connections_open",
		"Current number of open connections",
	)
	// PoolConnectionsIdle is the current number of idle connections.
	PoolConnectionsIdle = metrics.NewGauge(
		"rpool_connections_idle",
		"Current number of idle connections in the pool",
	)
	// PoolConnectionsInUse is the number of connections currently on loan.
	PoolConnectionsInUse = metrics.NewGauge(
		"rpool_connections_in_use",
		"Number of connections currently in use",
	)
	// PoolAcquireTotal is the total number of acquire attempts.
	PoolAcquireTotal = metrics.NewCounter(
		"rpool_acquire_total",
		"Total number of connection acquire attempts",
	)
	// PoolAcquireSuccessTotal is the number of successful acquires.
	PoolAcquireSuccessTotal = metrics.NewCounter(
		"rpool_acquire_success_total",
		"Total number of successful connection acquires",
	)
	// PoolAcquireFailedTotal is the number of failed acquires.
	PoolAcquireFailedTotal = metrics.NewCounter(
		"rpool_acquire_failed_total",
		"Total number of failed connection acquires",
	)
	// PoolReleaseTotal is the number of releases.
	PoolReleaseTotal = metrics.NewCounter(
		"rpool_release_total",
		"Total number of connection releases",
	)
	// PoolRecycleRejectsTotal is the number of connections rejected by
	// the recycle gate.
	PoolRecycleRejectsTotal = metrics.NewCounter(
		"rpool_recycle_rejects_total",
		"Total number of connections rejected by the recycle gate",
	)
	// PoolAcquireLatency tracks time spent acquiring connections.
	PoolAcquireLatency = metrics.NewHistogram(
		"rpool_acquire_duration_seconds",
		"Time spent acquiring a connection from the pool",
		metrics.DefaultLatencyBuckets,
	)
)

// newAcquireTimer starts a timer observing into PoolAcquireLatency.
func newAcquireTimer() *metrics.Timer {
	return metrics.NewTimer(PoolAcquireLatency)
}

// UpdateMetrics updates the pool gauges from Stats.
func UpdateMetrics(stats Stats) {
	PoolConnectionsMax.Set(int64(stats.MaxSize))
	PoolConnectionsOpen.Set(int64(stats.NumOpen))
	PoolConnectionsIdle.Set(int64(stats.NumIdle))
	PoolConnectionsInUse.Set(int64(stats.NumInUse))
}
