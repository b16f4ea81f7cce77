package redispool

import (
	"time"
)

// ttlMode selects how a connection's expiry deadline is computed.
type ttlMode int

const (
	ttlSimple ttlMode = iota
	ttlFuzzy
	ttlOnce
)

// TTL is the time to live policy for pooled connections. A nil *TTL
// means connections never expire.
type TTL struct {
	mode ttlMode
	min  time.Duration
	fuzz time.Duration
}

// Simple returns a TTL under which every connection expires exactly
// d after it was created.
func Simple(d time.Duration) *TTL {
	return &TTL{mode: ttlSimple, min: d}
}

// Fuzzy returns a TTL under which a connection expires after at least
// min and at most min + fuzz. The actual lifetime is fixed at creation
// by adding a random duration between 0 and fuzz to min, so that
// connections created together do not all expire at once.
func Fuzzy(min, fuzz time.Duration) *TTL {
	return &TTL{mode: ttlFuzzy, min: min, fuzz: fuzz}
}

// Once returns a TTL under which a connection is never reused: it is
// already expired by the time it could be recycled, so every Get on
// the pool creates a fresh connection.
func Once() *TTL {
	return &TTL{mode: ttlOnce}
}

// deadline computes the expiry deadline for a connection created at
// the given time. random yields a value in [0, 1) and is only
// consulted in fuzzy mode.
func (t *TTL) deadline(created time.Time, random func() float64) time.Time {
	switch t.mode {
	case ttlFuzzy:
		return created.Add(t.min + time.Duration(random()*float64(t.fuzz)))
	case ttlOnce:
		// already expired
		return created
	default:
		return created.Add(t.min)
	}
}
