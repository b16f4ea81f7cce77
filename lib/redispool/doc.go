// Package redispool provides a connection manager and fixed-capacity
// pool for Redis connections opened with gomodule/redigo.
//
// Connections handed out by the pool embed redis.Conn and can be used
// exactly like an unpooled connection. Before a previously released
// connection is reused, the manager optionally verifies it is still
// alive with a PING round-trip, and optionally retires it once it
// exceeds a configured time to live.
//
// # Basic Usage
//
//	// A pool of at most 5 connections, checked on reuse, no TTL.
//	manager := redispool.New(redispool.DialURL("redis://localhost:6379"), true, nil)
//	p := redispool.NewRedisPool(manager, 5)
//	defer p.Close()
//
//	conn, err := p.Get(ctx)
//	if err != nil {
//	    return err
//	}
//	defer p.Put(conn)
//
//	if _, err := conn.Do("SET", "key", "value"); err != nil {
//	    return err
//	}
//
// # Connection TTL
//
// Setting a TTL bounds how long a single connection is kept open,
// which avoids unbounded server-side buffer growth when many
// connections stay open for a very long time:
//
//	redispool.Simple(10 * time.Minute)       // fixed lifetime
//	redispool.Fuzzy(10*time.Minute, time.Minute) // spread out expiry
//	redispool.Once()                          // never reuse connections
//
// Fuzzy adds a random duration between 0 and fuzz to each connection's
// lifetime so that connections created together do not all expire in
// the same instant.
package redispool
