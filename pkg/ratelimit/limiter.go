package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-agency-backend/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds configuration for the fixed-window limiter.
type Config struct {
	// Max admitted attempts per key per window
	Max int
	// Window duration
	Window time.Duration
	// How often the background sweep removes expired records
	SweepInterval time.Duration
	// Key prefix for Redis keys (default "rl:contact:")
	KeyPrefix string
	// Optional Redis client. When set, counters live in Redis (atomic Lua
	// INCR+EXPIRE); on Redis errors the limiter fails open to the in-memory map.
	Redis *goredis.Client
}

// Decision is the outcome of an Admit call, carrying enough detail for
// X-RateLimit response headers.
type Decision struct {
	Allowed bool
	Count   int
	Limit   int
	ResetAt time.Time
}

// record tracks admitted attempts for one key within the current window.
type record struct {
	count   int
	resetAt time.Time
}

// Limiter is a process-wide fixed-window rate limiter. It is an explicit
// component instance: construct it once at startup and hand it to whatever
// needs admission control. A fixed window permits up to 2xMax attempts across
// a window boundary; that looseness is accepted for simplicity.
type Limiter struct {
	cfg     Config
	mu      sync.RWMutex
	records map[string]*record
	now     func() time.Time
}

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: {current_count, ttl_remaining}
const admitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// New creates a Limiter with the given config, applying defaults for any
// zero-valued field.
func New(cfg Config) *Limiter {
	if cfg.Max <= 0 {
		cfg.Max = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:contact:"
	}
	return &Limiter{
		cfg:     cfg,
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// Admit records an attempt for key and reports whether it is allowed.
// Best-effort limiting: a race that double-admits at the exact window
// boundary is tolerated.
func (l *Limiter) Admit(ctx context.Context, key string) Decision {
	if l.cfg.Redis != nil {
		d, err := l.admitRedis(ctx, key)
		if err == nil {
			return d
		}
		// Fail open to the in-memory map so a Redis outage does not take
		// the contact form down with it.
		logger.Log.Warn("rate limiter falling back to in-memory store", "error", err)
	}
	return l.admitMemory(key)
}

func (l *Limiter) admitRedis(ctx context.Context, key string) (Decision, error) {
	ttlSeconds := int(l.cfg.Window.Seconds())

	result, err := l.cfg.Redis.Eval(ctx, admitLuaScript, []string{l.cfg.KeyPrefix + key}, ttlSeconds).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit eval failed: %w", err)
	}

	count, ttl, err := parseAdmitReply(result)
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		Allowed: int(count) <= l.cfg.Max,
		Count:   int(count),
		Limit:   l.cfg.Max,
		ResetAt: l.now().Add(time.Duration(ttl) * time.Second),
	}, nil
}

// parseAdmitReply validates the {count, ttl} array returned by the admit
// script. A malformed reply is a Redis fault and must take the same fail-open
// path as a connection error, never a silent count of zero.
func parseAdmitReply(result interface{}) (count, ttl int64, err error) {
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, 0, fmt.Errorf("unexpected redis reply shape: %T", result)
	}
	count, countOK := arr[0].(int64)
	ttl, ttlOK := arr[1].(int64)
	if !countOK || !ttlOK {
		return 0, 0, fmt.Errorf("unexpected redis reply elements: %T, %T", arr[0], arr[1])
	}
	return count, ttl, nil
}

func (l *Limiter) admitMemory(key string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.records[key]
	if !ok || now.After(r.resetAt) {
		// First attempt in a window, or the previous window elapsed: the
		// record is replaced, never incremented past its expiry.
		r = &record{count: 1, resetAt: now.Add(l.cfg.Window)}
		l.records[key] = r
		return Decision{Allowed: true, Count: 1, Limit: l.cfg.Max, ResetAt: r.resetAt}
	}

	if r.count < l.cfg.Max {
		r.count++
		return Decision{Allowed: true, Count: r.count, Limit: l.cfg.Max, ResetAt: r.resetAt}
	}

	return Decision{Allowed: false, Count: r.count, Limit: l.cfg.Max, ResetAt: r.resetAt}
}

// Sweep removes expired in-memory records and returns how many were dropped.
// Keys are snapshotted under a read lock first so a full sweep never blocks
// concurrent admits for its whole duration. Redis keys expire on their own.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.RLock()
	var expired []string
	for key, r := range l.records {
		if now.After(r.resetAt) {
			expired = append(expired, key)
		}
	}
	l.mu.RUnlock()

	if len(expired) == 0 {
		return 0
	}

	removed := 0
	l.mu.Lock()
	for _, key := range expired {
		// Re-check: the record may have been replaced by a fresh window
		// between the snapshot and now.
		if r, ok := l.records[key]; ok && now.After(r.resetAt) {
			delete(l.records, key)
			removed++
		}
	}
	l.mu.Unlock()

	return removed
}

// StartSweeper launches the periodic cleanup goroutine. It runs until ctx is
// cancelled, which main ties to server shutdown.
func (l *Limiter) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(l.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := l.Sweep(); removed > 0 {
					logger.Log.Debug("rate limit sweep", "removed", removed)
				}
			}
		}
	}()
}

// Len reports the number of live in-memory records. Used by tests and the
// sweep log.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
