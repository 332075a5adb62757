// Package cache provides a Redis-backed cache for raw NHL payloads so that
// repeated scrapes of the same game do not re-fetch from the upstream
// endpoints. Only source bytes are cached; derived artifacts are memoized
// in-memory by the scraper and never persisted.
package cache

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"stormlightlabs.org/hockey/internal/core"
)

// Kind identifies the category of cached payload.
type Kind string

// Payload kinds. JSON feeds for live games change between fetches and get
// short TTLs; HTML reports for final games are immutable and get long TTLs.
const (
	KindGamecenter Kind = "gamecenter"
	KindLanding    Kind = "landing"
	KindRosters    Kind = "rosters"
	KindPlays      Kind = "plays"
	KindHomeShifts Kind = "home-shifts"
	KindAwayShifts Kind = "away-shifts"
	KindSchedule   Kind = "schedule"
	KindStandings  Kind = "standings"
)

// Config defines cache behavior.
type Config struct {
	App     string // application namespace
	Env     string
	Version string // bump to invalidate the whole cache
	Enabled bool
	TTLs    TTLConfig
}

// TTLConfig defines time-to-live durations per payload family. All TTLs get
// jitter so entries do not expire simultaneously.
type TTLConfig struct {
	Feed   time.Duration // gamecenter / landing JSON
	Report time.Duration // RO/PL/TH/TV HTML reports
	League time.Duration // schedule / standings JSON
}

// DefaultTTLConfig returns the recommended TTL values.
func DefaultTTLConfig() TTLConfig {
	return TTLConfig{
		Feed:   15 * time.Minute,
		Report: 24 * time.Hour,
		League: time.Hour,
	}
}

// Client wraps Redis operations with singleflight stampede protection and
// TTL jitter. A nil Client, or one with caching disabled, is a no-op.
type Client struct {
	Redis  *redis.Client // exported for direct access (CLI operations)
	sf     singleflight.Group
	config Config
}

// NewClient creates a cache client.
func NewClient(redisClient *redis.Client, config Config) *Client {
	return &Client{Redis: redisClient, config: config}
}

// GameKey builds a cache key for a per-game payload.
// Format: {app}:{env}:{version}:{kind}:{game_id}
func (c *Client) GameKey(kind Kind, gameID core.GameID) string {
	return c.buildKey(string(kind), gameID.String())
}

// LeagueKey builds a cache key for a league-wide payload (schedule or
// standings) with its discriminator (team+season, date).
func (c *Client) LeagueKey(kind Kind, identifier string) string {
	return c.buildKey(string(kind), identifier)
}

func (c *Client) buildKey(kind, identifier string) string {
	if c == nil {
		return fmt.Sprintf("%s:%s", kind, identifier)
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s", c.config.App, c.config.Env, c.config.Version, kind, identifier)
}

// ttlFor maps a payload kind to its configured TTL.
func (c *Client) ttlFor(kind Kind) time.Duration {
	switch kind {
	case KindGamecenter, KindLanding:
		return c.config.TTLs.Feed
	case KindSchedule, KindStandings:
		return c.config.TTLs.League
	default:
		return c.config.TTLs.Report
	}
}

// addJitter adds ±10% to a TTL to avoid simultaneous expiry.
func addJitter(ttl time.Duration) time.Duration {
	jitter := time.Duration(float64(ttl) * 0.1 * (rand.Float64()*2 - 1))
	return ttl + jitter
}

// GetBytes retrieves a cached payload. Returns false on miss or any cache
// failure; cache errors are never fatal to a scrape.
func (c *Client) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || !c.config.Enabled || c.Redis == nil {
		return nil, false
	}

	data, err := c.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetBytes stores a payload under the TTL for its kind.
func (c *Client) SetBytes(ctx context.Context, key string, kind Kind, data []byte) error {
	if c == nil || !c.config.Enabled || c.Redis == nil {
		return nil
	}
	return c.Redis.Set(ctx, key, data, addJitter(c.ttlFor(kind))).Err()
}

// Fetch returns the cached payload for key, or invokes fetch and caches its
// result. Concurrent callers for the same key share one upstream request.
func (c *Client) Fetch(ctx context.Context, key string, kind Kind, fetch func() ([]byte, error)) ([]byte, error) {
	if c == nil || !c.config.Enabled || c.Redis == nil {
		return fetch()
	}

	if data, ok := c.GetBytes(ctx, key); ok {
		return data, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		if data, ok := c.GetBytes(ctx, key); ok {
			return data, nil
		}

		data, err := fetch()
		if err != nil {
			return nil, err
		}

		if err := c.SetBytes(ctx, key, kind, data); err != nil {
			return data, nil // cache write failures are non-fatal
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Flush removes every key under the client's namespace prefix.
func (c *Client) Flush(ctx context.Context) (int64, error) {
	if c == nil || c.Redis == nil {
		return 0, fmt.Errorf("cache: no redis connection")
	}

	pattern := fmt.Sprintf("%s:%s:%s:*", c.config.App, c.config.Env, c.config.Version)

	var deleted int64
	iter := c.Redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.Redis.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, iter.Err()
}

// Stats reports key counts per payload kind under the client's namespace.
func (c *Client) Stats(ctx context.Context) (map[Kind]int64, error) {
	if c == nil || c.Redis == nil {
		return nil, fmt.Errorf("cache: no redis connection")
	}

	kinds := []Kind{
		KindGamecenter, KindLanding, KindRosters, KindPlays,
		KindHomeShifts, KindAwayShifts, KindSchedule, KindStandings,
	}

	counts := make(map[Kind]int64, len(kinds))
	for _, kind := range kinds {
		pattern := c.buildKey(string(kind), "*")
		iter := c.Redis.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			counts[kind]++
		}
		if err := iter.Err(); err != nil {
			return counts, err
		}
	}
	return counts, nil
}
