// Command example demonstrates basic usage of the redispool package
// against a local Redis server.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/zenria/redis-async-pool/lib/redispool"
)

func main() {
	// A pool of at most 5 connections, checked on reuse, without TTL.
	manager := redispool.New(redispool.DialURL("redis://localhost:6379"), true, nil)
	p := redispool.NewRedisPool(manager, 5)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := p.Get(ctx)
	if err != nil {
		log.Fatalf("get connection: %v", err)
	}
	defer p.Put(conn)

	if _, err := conn.Do("SET", "key", "value"); err != nil {
		log.Fatalf("set: %v", err)
	}

	value, err := redis.String(conn.Do("GET", "key"))
	if err != nil {
		log.Fatalf("get: %v", err)
	}
	fmt.Printf("key = %q\n", value)

	exists, err := redis.Bool(conn.Do("EXISTS", "key"))
	if err != nil {
		log.Fatalf("exists: %v", err)
	}
	fmt.Printf("key exists? %v\n", exists)
}
