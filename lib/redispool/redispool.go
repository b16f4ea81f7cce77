package redispool

import (
	"context"
	"fmt"

	"github.com/zenria/redis-async-pool/lib/pool"
)

// RedisPool is a typed facade over the generic pool for Redis
// connections managed by a Manager.
type RedisPool struct {
	pool *pool.Pool
}

// NewRedisPool creates a pool of at most size connections driven by
// the given manager, with default acquisition settings.
func NewRedisPool(m *Manager, size int) *RedisPool {
	cfg := pool.DefaultConfig()
	cfg.MaxSize = size
	return NewRedisPoolWithConfig(m, cfg)
}

// NewRedisPoolWithConfig creates a pool with full control over the
// pool configuration.
func NewRedisPoolWithConfig(m *Manager, cfg pool.Config) *RedisPool {
	return &RedisPool{
		pool: pool.New(m, cfg),
	}
}

// Get acquires a connection from the pool, waiting for a free slot if
// the pool is at capacity. The connection must be handed back with
// Put, or with Discard when it is known to be broken.
func (p *RedisPool) Get(ctx context.Context) (*Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := conn.(*Conn)
	if !ok {
		// The manager only ever produces *Conn.
		p.pool.Discard(conn)
		return nil, fmt.Errorf("redispool: unexpected connection type %T", conn)
	}
	return c, nil
}

// Put returns a connection to the pool, making it eligible for reuse
// by the next caller.
func (p *RedisPool) Put(c *Conn) {
	if c == nil {
		return
	}
	p.pool.Release(c)
}

// Discard removes a broken connection from the pool and closes it.
func (p *RedisPool) Discard(c *Conn) {
	if c == nil {
		return
	}
	p.pool.Discard(c)
}

// Stats returns the underlying pool statistics.
func (p *RedisPool) Stats() pool.Stats {
	return p.pool.Stats()
}

// Close closes the pool and all idle connections.
func (p *RedisPool) Close() error {
	return p.pool.Close()
}
