package expcache

import (
	"context"
	"math"
	"time"
)

// NeverExpire is a ttl value to indicate that entry must not expire.
const NeverExpire = time.Duration(math.MaxInt64)

// Sweepable removes its own expired entries.
type Sweepable interface {
	// Sweep removes entries that have expired at or before now.
	//
	// Sweep must be safe to call concurrently with any other operation of the implementation.
	Sweep(ctx context.Context, now time.Time)
}

// SweepFunc adapts a function to Sweepable.
type SweepFunc func(ctx context.Context, now time.Time)

// Sweep calls f.
func (f SweepFunc) Sweep(ctx context.Context, now time.Time) {
	f(ctx, now)
}

// Registrar keeps sweep targets by registration id.
type Registrar interface {
	// Register adds or replaces target with id.
	Register(id int64, target Sweepable)

	// Deregister removes target with id, missing id is ignored.
	Deregister(id int64)
}

// Entry is a read-only view of a cached value.
type Entry[V any] interface {
	Value() V
	ExpireAt() time.Time
	Expires() bool
}

// Walker calls function for every entry in cache and fails on first error returned by that function.
//
// Count of processed entries is returned.
type Walker[K comparable, V any] interface {
	Walk(func(key K, entry Entry[V]) error) (int, error)
}
