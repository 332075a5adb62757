package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"stormlightlabs.org/hockey/internal/cache"
	"stormlightlabs.org/hockey/internal/config"
	"stormlightlabs.org/hockey/internal/nhl"
)

// newLogger builds the structured logger from configuration.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// newRedis opens the Redis connection when caching is enabled. A nil
// return means the pipeline runs uncached.
func newRedis(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// newCache wires the payload cache over the Redis connection.
func newCache(cfg *config.Config, rdb *redis.Client) *cache.Client {
	ttls := cache.TTLConfig{
		Feed:   secondsToDuration(cfg.Cache.TTLs.Feed),
		Report: secondsToDuration(cfg.Cache.TTLs.Report),
		League: secondsToDuration(cfg.Cache.TTLs.League),
	}

	return cache.NewClient(rdb, cache.Config{
		App:     "hockey",
		Env:     cfg.Cache.Env,
		Version: cfg.Cache.Version,
		Enabled: cfg.Cache.Enabled && rdb != nil,
		TTLs:    ttls,
	})
}

// newNHLClient assembles the upstream client from configuration: payload
// cache, shared rate limiter, and retry policy.
func newNHLClient(cfg *config.Config, logger *log.Logger) (*nhl.Client, error) {
	rdb, err := newRedis(cfg)
	if err != nil {
		return nil, err
	}

	var limiter *redis_rate.Limiter
	if rdb != nil {
		limiter = redis_rate.NewLimiter(rdb)
	}

	return nhl.NewClient(nhl.ClientConfig{
		APIBaseURL:     cfg.HTTP.APIBaseURL,
		HTMLBaseURL:    cfg.HTTP.HTMLBaseURL,
		ConnectTimeout: cfg.HTTP.ConnectTimeout,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		MaxRetries:     cfg.HTTP.MaxRetries,
		BackoffBase:    cfg.HTTP.BackoffBase,
		RequestsPerSec: cfg.HTTP.RequestsPerSec,
		Logger:         logger,
		Cache:          newCache(cfg, rdb),
		Limiter:        limiter,
	}), nil
}
