// Package pool provides a generic, fixed-capacity pool for expensive
// stateful connections. The pool owns capacity accounting and caller
// queueing; all lifecycle decisions are delegated to a Manager that
// creates new connections and decides whether a previously released
// connection may be reused.
//
// The pool supports:
//   - Fixed maximum capacity with blocking, context-aware acquisition
//   - A recycle gate applied to every idle connection before reuse
//   - Automatic replacement of rejected connections
//   - Optional background reaping of idle connections
//   - Metrics for pool utilization
//
// # Basic Usage
//
//	p := pool.New(manager, pool.Config{MaxSize: 5})
//	defer p.Close()
//
//	conn, err := p.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer p.Release(conn)
//
//	// Use connection...
//
// A connection handed out by Acquire is exclusively owned by the
// caller until it is handed back with Release (eligible for reuse) or
// Discard (known bad, closed immediately). Callers must never close a
// pooled connection themselves.
//
// # Metrics
//
// Pool utilization metrics are registered with the metrics package:
//   - rpool_connections_max: Maximum pool capacity
//   - rpool_connections_open: Current open connections
//   - rpool_connections_idle: Current idle connections
//   - rpool_connections_in_use: Connections currently on loan
//   - rpool_acquire_total: Total acquire attempts
//   - rpool_acquire_success_total: Successful acquires
//   - rpool_acquire_failed_total: Failed acquires
//   - rpool_release_total: Total releases
//   - rpool_recycle_rejects_total: Connections rejected by the recycle gate
package pool
