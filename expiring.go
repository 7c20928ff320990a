package expcache

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"github.com/puzpuzpuz/xsync/v3"
)

var lastID atomic.Int64

// NextID returns a process-wide unique registration id.
func NextID() int64 {
	return lastID.Add(1)
}

var _ Sweepable = &Cache[string, int]{}

// Cache is an in-memory cache with expiring entries.
//
// Please use New to create instance and Close to release it.
type Cache[K comparable, V any] struct {
	data *xsync.MapOf[K, entry[V]]

	id      int64
	sweeper Registrar

	config Config
	log    ctxd.Logger
	stat   stats.Tracker
}

// New creates an instance of cache and registers it in sweeper.
func New[K comparable, V any](options ...func(cfg *Config)) *Cache[K, V] {
	cfg := Config{}
	for _, option := range options {
		option(&cfg)
	}

	if cfg.Sweeper == nil {
		cfg.Sweeper = DefaultSweeper()
	}

	if cfg.ID == 0 {
		cfg.ID = NextID()
	}

	c := &Cache[K, V]{
		data:    xsync.NewMapOf[K, entry[V]](),
		id:      cfg.ID,
		sweeper: cfg.Sweeper,
		config:  cfg,
		log:     cfg.Logger,
		stat:    cfg.Stats,
	}

	c.sweeper.Register(c.id, c)

	return c
}

// ID returns registration id of cache.
func (c *Cache[K, V]) ID() int64 {
	return c.id
}

// Put stores value that never expires.
func (c *Cache[K, V]) Put(k K, v V) error {
	return c.PutTTL(k, v, NeverExpire)
}

// PutTTL stores value that expires after ttl, previous entry of the key is replaced.
//
// Non-positive ttl makes entry eligible for removal on next sweep.
func (c *Cache[K, V]) PutTTL(k K, v V, ttl time.Duration) error {
	if isAbsent(k) {
		return fmt.Errorf("%w: nil key", ErrInvalidArgument)
	}

	if isAbsent(v) {
		return fmt.Errorf("%w: nil value for key %v", ErrInvalidArgument, k)
	}

	c.data.Store(k, newEntry(v, ttl, time.Now()))

	if c.log != nil {
		c.log.Debug(context.Background(), "wrote to cache",
			"name", c.config.Name,
			"key", k,
			"ttl", ttl,
		)
	}

	if c.stat != nil {
		c.stat.Add(context.Background(), MetricWrite, 1, "name", c.config.Name)
	}

	return nil
}

// Get returns stored value and true, or zero value and false if key is missing.
//
// Value may be returned after its deadline until it is swept.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	e, found := c.data.Load(k)

	if c.stat != nil {
		if found {
			c.stat.Add(context.Background(), MetricHit, 1, "name", c.config.Name)
		} else {
			c.stat.Add(context.Background(), MetricMiss, 1, "name", c.config.Name)
		}
	}

	return e.val, found
}

// GetOrDefault returns stored value or def if key is missing.
func (c *Cache[K, V]) GetOrDefault(k K, def V) V {
	if v, found := c.Get(k); found {
		return v
	}

	return def
}

// Delete removes key and returns its previous value.
func (c *Cache[K, V]) Delete(k K) (V, bool) {
	e, found := c.data.LoadAndDelete(k)

	if found && c.log != nil {
		c.log.Debug(context.Background(), "deleted cache entry",
			"name", c.config.Name,
			"key", k,
		)
	}

	return e.val, found
}

// Sweep removes entries that have expired at or before now.
func (c *Cache[K, V]) Sweep(ctx context.Context, now time.Time) {
	start := time.Now()
	nowMs := now.UnixMilli()
	cnt := 0

	c.data.Range(func(k K, e entry[V]) bool {
		if !e.expired(nowMs) {
			return true
		}

		// Entry may have been replaced since Range observed it.
		c.data.Compute(k, func(cur entry[V], loaded bool) (entry[V], bool) {
			if !loaded {
				return cur, true
			}

			if cur.expired(nowMs) {
				cnt++

				return cur, true
			}

			return cur, false
		})

		return true
	})

	if cnt == 0 {
		return
	}

	if c.log != nil {
		c.log.Debug(ctx, "swept expired cache entries",
			"name", c.config.Name,
			"count", cnt,
			"elapsed", time.Since(start).String(),
		)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricEvict, float64(cnt), "name", c.config.Name)
		c.stat.Set(ctx, MetricItems, float64(c.data.Size()), "name", c.config.Name)
	}
}

// DeleteAll erases all entries.
func (c *Cache[K, V]) DeleteAll(ctx context.Context) {
	start := time.Now()
	cnt := 0

	c.data.Range(func(k K, _ entry[V]) bool {
		if _, found := c.data.LoadAndDelete(k); found {
			cnt++
		}

		return true
	})

	if c.log != nil {
		c.log.Important(ctx, "deleted all entries in cache",
			"name", c.config.Name,
			"elapsed", time.Since(start).String(),
			"count", cnt,
		)
	}
}

// Len returns number of entries in cache, including expired and not yet swept.
func (c *Cache[K, V]) Len() int {
	return c.data.Size()
}

// Walk walks cached entries.
func (c *Cache[K, V]) Walk(walkFn func(key K, e Entry[V]) error) (int, error) {
	var (
		n       = 0
		lastErr error
	)

	c.data.Range(func(k K, e entry[V]) bool {
		if err := walkFn(k, e); err != nil {
			lastErr = err

			return false
		}

		n++

		return true
	})

	return n, lastErr
}

// Close deregisters cache from its sweeper.
//
// Stored entries are kept and cache remains usable, but expired entries are no longer swept.
// Close is safe to call multiple times.
func (c *Cache[K, V]) Close() {
	c.sweeper.Deregister(c.id)

	if c.log != nil {
		c.log.Debug(context.Background(), "cache closed",
			"name", c.config.Name,
			"id", c.id,
		)
	}
}

// isAbsent checks for nil interface, pointer, map, slice, chan or func.
func isAbsent(v interface{}) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
