package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrPoolClosed is returned when operating on a closed pool.
	ErrPoolClosed = errors.New("pool: pool is closed")
	// ErrTimeout is returned when acquiring a connection times out.
	ErrTimeout = errors.New("pool: connection acquisition timeout")
)

// Connection represents a poolable connection.
type Connection interface {
	// Close closes the connection.
	Close() error
}

// Manager supplies the pool with connection lifecycle decisions.
//
// Create opens a brand new connection. It is called whenever the pool
// is below capacity and no reusable idle connection exists, or when an
// idle connection was rejected by Recycle and must be replaced.
//
// Recycle is called for every idle connection before it is handed to
// the next caller. Returning nil accepts the connection for reuse; a
// non-nil error rejects it, in which case the pool closes it and
// obtains a replacement. Recycle is never called concurrently for the
// same connection.
//
// Both methods must be safe for concurrent use across different
// connections.
type Manager interface {
	Create(ctx context.Context) (Connection, error)
	Recycle(ctx context.Context, conn Connection) error
}

// Config configures the connection pool.
type Config struct {
	// MaxSize is the maximum number of connections that may exist at
	// once, on loan and idle combined.
	// Default: 10
	MaxSize int
	// AcquireTimeout is how long to wait when acquiring a connection
	// and the caller's context carries no deadline of its own.
	// Default: 30 seconds
	AcquireTimeout time.Duration
	// ReapInterval is how often idle connections are passed through
	// the manager's recycle gate in the background, evicting the ones
	// it rejects. Set to 0 to disable background reaping; rejected
	// connections are then only evicted on acquire.
	ReapInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxSize:        10,
		AcquireTimeout: 30 * time.Second,
	}
}

// idleConn is an idle connection with the time it was released.
type idleConn struct {
	conn      Connection
	idleSince time.Time
}

// Pool is a fixed-capacity connection pool driven by a Manager.
type Pool struct {
	manager Manager
	config  Config

	// tokens holds one token per free capacity slot. Acquiring a
	// connection consumes a token; the token is returned when the
	// loan ends. Ordering matters on release: the connection is made
	// idle-visible before its token is freed, which guarantees a
	// token holder that observes an empty idle list may create a new
	// connection without exceeding MaxSize.
	tokens chan struct{}

	mu     sync.Mutex
	idle   []idleConn
	open   int
	closed bool

	done     chan struct{}
	reapDone chan struct{}

	// Metrics
	acquireCount   uint64
	acquireSuccess uint64
	acquireFailed  uint64
	releaseCount   uint64
	recycleRejects uint64
}

// New creates a new connection pool of at most cfg.MaxSize connections
// managed by the given Manager.
func New(manager Manager, cfg Config) *Pool {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 10
	}
	if cfg.AcquireTimeout < 0 {
		cfg.AcquireTimeout = 30 * time.Second
	}

	p := &Pool{
		manager:  manager,
		config:   cfg,
		tokens:   make(chan struct{}, cfg.MaxSize),
		idle:     make([]idleConn, 0, cfg.MaxSize),
		done:     make(chan struct{}),
		reapDone: make(chan struct{}),
	}
	for i := 0; i < cfg.MaxSize; i++ {
		p.tokens <- struct{}{}
	}

	if cfg.ReapInterval > 0 {
		go p.reapLoop()
	} else {
		close(p.reapDone)
	}

	log.WithField("maxSize", cfg.MaxSize).WithField("reapInterval", cfg.ReapInterval).Debug("pool created")
	return p
}

// Acquire gets a connection from the pool. It blocks until a capacity
// slot is available or the context is canceled.
//
// Idle connections are passed through the manager's recycle gate
// first; a rejected connection is closed and silently replaced, so a
// caller only sees an error when creating a replacement fails too.
func (p *Pool) Acquire(ctx context.Context) (Connection, error) {
	atomic.AddUint64(&p.acquireCount, 1)
	PoolAcquireTotal.Inc()
	timer := newAcquireTimer()
	defer timer.ObserveDuration()

	// Use configured timeout if context has no deadline
	acquireCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && p.config.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.config.AcquireTimeout)
		defer cancel()
	}

	// Wait for a free capacity slot
	select {
	case <-p.done:
		p.markAcquireFailed()
		return nil, ErrPoolClosed
	case <-acquireCtx.Done():
		p.markAcquireFailed()
		if acquireCtx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, acquireCtx.Err()
	case <-p.tokens:
	}

	// One capacity token is held from here on. Every exit path must
	// either hand out a connection or return the token.
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			p.tokens <- struct{}{}
			p.markAcquireFailed()
			return nil, ErrPoolClosed
		}
		var conn Connection
		if n := len(p.idle); n > 0 {
			// Most recently released first (LIFO)
			conn = p.idle[n-1].conn
			p.idle = p.idle[:n-1]
		}
		p.mu.Unlock()

		if conn == nil {
			break
		}

		if err := p.manager.Recycle(acquireCtx, conn); err != nil {
			p.markRecycleReject()
			log.WithError(err).Debug("recycle gate rejected idle connection")
			p.closeConn(conn)
			continue
		}

		p.markAcquireSuccess()
		log.Debug("acquired recycled connection from pool")
		return conn, nil
	}

	conn, err := p.manager.Create(acquireCtx)
	if err != nil {
		p.tokens <- struct{}{}
		p.markAcquireFailed()
		log.WithError(err).Debug("failed to create new connection")
		return nil, err
	}

	p.mu.Lock()
	p.open++
	p.mu.Unlock()

	p.markAcquireSuccess()
	log.Debug("created new connection")
	return conn, nil
}

// Release returns a connection to the pool, making it eligible for
// reuse. If the pool is closed, the connection is closed instead.
func (p *Pool) Release(conn Connection) {
	if conn == nil {
		return
	}

	atomic.AddUint64(&p.releaseCount, 1)
	PoolReleaseTotal.Inc()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		log.Debug("pool closed, closing released connection")
		p.closeConn(conn)
		p.tokens <- struct{}{}
		return
	}
	p.idle = append(p.idle, idleConn{conn: conn, idleSince: time.Now()})
	p.mu.Unlock()

	p.tokens <- struct{}{}
	log.Debug("connection released to pool")
}

// Discard removes a connection from the pool without returning it.
// Use this when a connection is known to be bad.
func (p *Pool) Discard(conn Connection) {
	if conn == nil {
		return
	}

	log.Debug("discarding bad connection")
	p.closeConn(conn)
	p.tokens <- struct{}{}
}

func (p *Pool) markAcquireSuccess() {
	atomic.AddUint64(&p.acquireSuccess, 1)
	PoolAcquireSuccessTotal.Inc()
}

func (p *Pool) markAcquireFailed() {
	atomic.AddUint64(&p.acquireFailed, 1)
	PoolAcquireFailedTotal.Inc()
}

func (p *Pool) markRecycleReject() {
	atomic.AddUint64(&p.recycleRejects, 1)
	PoolRecycleRejectsTotal.Inc()
}

// closeConn closes a connection and updates the open count.
func (p *Pool) closeConn(conn Connection) {
	if err := conn.Close(); err != nil {
		log.WithError(err).Debug("error closing connection")
	}
	p.mu.Lock()
	p.open--
	p.mu.Unlock()
}

// Close closes the pool and all idle connections. Waiting acquirers
// fail with ErrPoolClosed; connections still on loan are closed when
// they are released.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.closed = true
	idle := p.idle
	p.idle = nil
	p.open -= len(idle)
	p.mu.Unlock()

	close(p.done)

	for _, ic := range idle {
		if err := ic.conn.Close(); err != nil {
			log.WithError(err).Debug("error closing idle connection")
		}
	}

	// Wait for the reaper goroutine
	<-p.reapDone

	log.Debug("pool closed")
	return nil
}

// reapLoop periodically runs the recycle gate over idle connections.
func (p *Pool) reapLoop() {
	defer close(p.reapDone)

	ticker := time.NewTicker(p.config.ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.reapIdle()
		}
	}
}

// reapIdle evicts idle connections the manager no longer accepts.
func (p *Pool) reapIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	kept := p.idle[:0]
	evicted := 0
	for _, ic := range p.idle {
		if err := p.manager.Recycle(context.Background(), ic.conn); err != nil {
			p.markRecycleReject()
			ic.conn.Close()
			p.open--
			evicted++
			continue
		}
		kept = append(kept, ic)
	}
	p.idle = kept

	if evicted > 0 {
		log.WithField("evicted", evicted).Debug("reaper evicted idle connections")
	}
}

// Stats returns pool statistics.
type Stats struct {
	// MaxSize is the maximum pool capacity.
	MaxSize int
	// NumOpen is the current number of open connections.
	NumOpen int
	// NumIdle is the current number of idle connections.
	NumIdle int
	// NumInUse is the number of connections currently on loan.
	NumInUse int
	// AcquireCount is the total number of acquire attempts.
	AcquireCount uint64
	// AcquireSuccess is the number of successful acquires.
	AcquireSuccess uint64
	// AcquireFailed is the number of failed acquires.
	AcquireFailed uint64
	// ReleaseCount is the number of releases.
	ReleaseCount uint64
	// RecycleRejects is the number of connections rejected by the
	// recycle gate (expired or failed health check).
	RecycleRejects uint64
}

// Stats returns current pool statistics.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		MaxSize:        p.config.MaxSize,
		NumOpen:        p.open,
		NumIdle:        len(p.idle),
		NumInUse:       p.open - len(p.idle),
		AcquireCount:   atomic.LoadUint64(&p.acquireCount),
		AcquireSuccess: atomic.LoadUint64(&p.acquireSuccess),
		AcquireFailed:  atomic.LoadUint64(&p.acquireFailed),
		ReleaseCount:   atomic.LoadUint64(&p.releaseCount),
		RecycleRejects: atomic.LoadUint64(&p.recycleRejects),
	}
}
