package expcache

import (
	"math"
	"time"
)

// neverExpires is a sentinel deadline of entries without ttl.
const neverExpires = int64(math.MaxInt64)

// entry is a cache entry with absolute deadline in unix milliseconds.
type entry[V any] struct {
	val V
	exp int64
}

func newEntry[V any](v V, ttl time.Duration, now time.Time) entry[V] {
	e := entry[V]{val: v, exp: neverExpires}

	if ttl == NeverExpire {
		return e
	}

	e.exp = now.UnixMilli() + ttl.Milliseconds()

	return e
}

func (e entry[V]) expired(nowMs int64) bool {
	return e.exp <= nowMs
}

func (e entry[V]) Value() V {
	return e.val
}

func (e entry[V]) Expires() bool {
	return e.exp != neverExpires
}

// ExpireAt returns deadline, or zero time if entry never expires.
func (e entry[V]) ExpireAt() time.Time {
	if e.exp == neverExpires {
		return time.Time{}
	}

	return time.UnixMilli(e.exp)
}
