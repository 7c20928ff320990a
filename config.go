package expcache

import (
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Config controls cache instance.
type Config struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is cache instance name, used in stats and logging.
	Name string

	// Sweeper removes expired entries periodically, default is DefaultSweeper().
	//
	// Use NoOp to disable background sweeping.
	Sweeper Registrar

	// ID is a registration id within Sweeper, zero means auto-assigned with NextID.
	ID int64
}

// WithSweeper binds cache to a sweeper.
func WithSweeper(s Registrar) func(cfg *Config) {
	return func(cfg *Config) {
		cfg.Sweeper = s
	}
}

// WithID sets registration id of cache.
func WithID(id int64) func(cfg *Config) {
	return func(cfg *Config) {
		cfg.ID = id
	}
}

// SweeperConfig controls sweeper instance.
type SweeperConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is sweeper instance name, used in stats and logging.
	Name string

	// Interval is a delay between two consecutive sweeps, default 500ms.
	Interval time.Duration

	// Workers is a number of goroutines to sweep targets in parallel, default 1.
	Workers int

	// OnFault is called with ErrBackgroundTaskFault wrapped error when target sweep fails, can be nil.
	//
	// Panic in OnFault is recovered and logged.
	// If Logger, Stats and OnFault are all nil, faults are written to stderr.
	OnFault func(id int64, err error)
}

// WithInterval sets sweep interval.
func WithInterval(d time.Duration) func(cfg *SweeperConfig) {
	return func(cfg *SweeperConfig) {
		cfg.Interval = d
	}
}

// WithWorkers sets number of sweep workers.
func WithWorkers(n int) func(cfg *SweeperConfig) {
	return func(cfg *SweeperConfig) {
		cfg.Workers = n
	}
}

func (cfg *SweeperConfig) applyDefaults() {
	if cfg.Interval <= 0 {
		cfg.Interval = 500 * time.Millisecond
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	if cfg.Logger == nil && cfg.Stats == nil && cfg.OnFault == nil {
		cfg.Logger = errorLogger{w: faultOutput}
	}
}
