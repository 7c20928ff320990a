package expcache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Purger removes all entries at once, Cache implements it.
type Purger interface {
	DeleteAll(ctx context.Context)
}

var _ Purger = &Cache[string, int]{}

// Invalidator purges a group of caches together, no more often than SkipInterval.
type Invalidator struct {
	// SkipInterval defines minimal duration between two purges (flood protection), default 15s.
	SkipInterval time.Duration

	mu      sync.Mutex
	targets []Purger
	lastRun time.Time
}

// Add registers caches to purge on Invalidate.
func (i *Invalidator) Add(targets ...Purger) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.targets = append(i.targets, targets...)
}

// Invalidate purges registered caches and returns their count.
func (i *Invalidator) Invalidate(ctx context.Context) (int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.targets) == 0 {
		return 0, ErrNothingToInvalidate
	}

	skip := i.SkipInterval
	if skip == 0 {
		skip = 15 * time.Second
	}

	if since := time.Since(i.lastRun); since < skip {
		return 0, fmt.Errorf("%w %s ago, next purge in %s",
			ErrAlreadyInvalidated, since.Round(time.Millisecond), (skip - since).Round(time.Millisecond))
	}

	i.lastRun = time.Now()

	for _, p := range i.targets {
		p.DeleteAll(ctx)
	}

	return len(i.targets), nil
}
