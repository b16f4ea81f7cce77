package redispool

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

// Conn is a pooled Redis connection. It embeds the raw redis.Conn, so
// the full command surface (Do, Send, Flush, Receive, pipelining,
// pub/sub) is available on it unchanged; the wrapper only carries the
// creation metadata the manager inspects on recycle.
//
// A Conn is exclusively owned by one caller at a time. It must be
// handed back to the pool with Put or Discard, never closed directly.
type Conn struct {
	redis.Conn

	createdAt time.Time
	expiresAt time.Time // zero when no TTL is configured
}

// CreatedAt returns the time the underlying connection was opened.
func (c *Conn) CreatedAt() time.Time {
	return c.createdAt
}

// ExpiresAt returns the connection's expiry deadline. ok is false
// when the manager was configured without a TTL.
func (c *Conn) ExpiresAt() (deadline time.Time, ok bool) {
	return c.expiresAt, !c.expiresAt.IsZero()
}

// expired reports whether the connection has outlived its TTL at the
// given instant.
func (c *Conn) expired(now time.Time) bool {
	return !c.expiresAt.IsZero() && !now.Before(c.expiresAt)
}
