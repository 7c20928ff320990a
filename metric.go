package expcache

import (
	"github.com/bool64/cache"
)

// Cache metrics share names with github.com/bool64/cache.
const (
	MetricWrite = cache.MetricWrite
	MetricHit   = cache.MetricHit
	MetricMiss  = cache.MetricMiss
	MetricEvict = cache.MetricEvict
	MetricItems = cache.MetricItems
)

// Sweeper metrics.
const (
	MetricSweep        = "cache_sweep"
	MetricSweepFault   = "cache_sweep_fault"
	MetricSweepTargets = "cache_sweep_targets"
)
