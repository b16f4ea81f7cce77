// redispool is a smoke and load testing tool for the redis-async-pool
// module. It opens a pool against a Redis server and hammers it with
// concurrent PING workers, reporting pool statistics on exit.
//
// Usage:
//
//	redispool [flags]
//
// Flags:
//
//	-config string
//	    Path to TOML configuration file (default "redispool.toml")
//	-url string
//	    Redis server URL (overrides config)
//	-workers int
//	    Number of concurrent workers (default 10)
//	-duration duration
//	    How long to run (default 10s)
//	-rate float
//	    Limit total operations per second (0 disables)
//	-metrics string
//	    Address to serve /metrics on (empty disables)
//	-version
//	    Print version and exit
//
// See https://github.com/zenria/redis-async-pool for more information.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zenria/redis-async-pool/lib/metrics"
	"github.com/zenria/redis-async-pool/lib/pool"
	"github.com/zenria/redis-async-pool/lib/ratelimit"
	"github.com/zenria/redis-async-pool/lib/redispool"
	"github.com/zenria/redis-async-pool/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "redispool.toml", "Path to TOML configuration file")
	redisURL := flag.String("url", "", "Redis server URL (overrides config)")
	workers := flag.Int("workers", 10, "Number of concurrent workers")
	duration := flag.Duration("duration", 10*time.Second, "How long to run")
	rate := flag.Float64("rate", 0, "Limit total operations per second (0 disables)")
	metricsAddr := flag.String("metrics", "", "Address to serve /metrics on (empty disables)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "redispool - Redis connection pool smoke tester\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  redispool [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("redispool version %s\n", version.Full())
		return 0
	}

	cfg, err := redispool.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *redisURL != "" {
		cfg.Redis.URL = *redisURL
	}

	p, err := cfg.NewPool()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		return 1
	}
	defer p.Close()

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
	}

	// Cancel on SIGINT/SIGTERM or after the configured duration
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Printf("redispool %s: %d workers against %s for %v\n",
		version.Full(), *workers, cfg.Redis.URL, *duration)

	// All workers share one limiter so -rate caps the aggregate throughput
	var limiter *ratelimit.Limiter
	if *rate > 0 {
		limiter = ratelimit.New(*rate, *workers)
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < *workers; i++ {
		g.Go(func() error {
			return pingWorker(gctx, p, limiter)
		})
	}

	err = g.Wait()
	elapsed := time.Since(start)

	stats := p.Stats()
	pool.UpdateMetrics(stats)
	printStats(stats, elapsed)

	if err != nil {
		fmt.Fprintf(os.Stderr, "worker failed: %v\n", err)
		return 1
	}
	return 0
}

// pingWorker issues PINGs through the pool until the context expires.
func pingWorker(ctx context.Context, p *redispool.RedisPool, limiter *ratelimit.Limiter) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
		}

		conn, err := p.Get(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("get connection: %w", err)
		}

		if _, err := conn.Do("PING"); err != nil {
			p.Discard(conn)
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("ping: %w", err)
		}
		p.Put(conn)
	}
}

func printStats(stats pool.Stats, elapsed time.Duration) {
	fmt.Printf("\nelapsed:          %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("acquires:         %d (%.0f/s)\n",
		stats.AcquireCount, float64(stats.AcquireCount)/elapsed.Seconds())
	fmt.Printf("  successful:     %d\n", stats.AcquireSuccess)
	fmt.Printf("  failed:         %d\n", stats.AcquireFailed)
	fmt.Printf("releases:         %d\n", stats.ReleaseCount)
	fmt.Printf("recycle rejects:  %d\n", stats.RecycleRejects)
	fmt.Printf("open connections: %d (max %d)\n", stats.NumOpen, stats.MaxSize)
}
