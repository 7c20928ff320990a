package expcache

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"github.com/puzpuzpuz/xsync/v3"
)

var _ Registrar = &Sweeper{}

var defaultSweeper = sync.OnceValue(func() *Sweeper {
	return NewSweeper(func(cfg *SweeperConfig) {
		cfg.Name = "default"
	})
})

// DefaultSweeper returns shared process-wide sweeper with a single worker and 500ms interval.
//
// It is created on first use.
func DefaultSweeper() *Sweeper {
	return defaultSweeper()
}

type sweepJob struct {
	ctx    context.Context //nolint:containedctx // Fire context.
	id     int64
	target Sweepable
	now    time.Time
	wg     *sync.WaitGroup
}

// Sweeper periodically calls Sweep of registered targets.
//
// Please use NewSweeper to create instance.
type Sweeper struct {
	targets *xsync.MapOf[int64, Sweepable]

	// fireMu serializes fires and guards jobs against send after close.
	fireMu  sync.Mutex
	jobs    chan sweepJob
	stopped atomic.Bool

	done     chan struct{}
	stopOnce sync.Once
	loop     sync.WaitGroup
	workers  sync.WaitGroup

	ctx    context.Context //nolint:containedctx // Base context for background logging.
	config SweeperConfig
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewSweeper creates and starts sweeper.
func NewSweeper(options ...func(cfg *SweeperConfig)) *Sweeper {
	cfg := SweeperConfig{}
	for _, option := range options {
		option(&cfg)
	}

	cfg.applyDefaults()

	s := &Sweeper{
		targets: xsync.NewMapOf[int64, Sweepable](),
		jobs:    make(chan sweepJob),
		done:    make(chan struct{}),
		ctx:     ctxd.AddFields(context.Background(), "sweeper", cfg.Name),
		config:  cfg,
		log:     cfg.Logger,
		stat:    cfg.Stats,
	}

	s.workers.Add(cfg.Workers)

	for i := 0; i < cfg.Workers; i++ {
		go s.work()
	}

	s.loop.Add(1)

	go s.run()

	return s
}

// Register adds or replaces target with id.
func (s *Sweeper) Register(id int64, target Sweepable) {
	s.targets.Store(id, target)
}

// Deregister removes target with id, missing id is ignored.
func (s *Sweeper) Deregister(id int64) {
	s.targets.Delete(id)
}

// Len returns number of registered targets.
func (s *Sweeper) Len() int {
	return s.targets.Size()
}

// Stopped returns true after Stop.
func (s *Sweeper) Stopped() bool {
	return s.stopped.Load()
}

// Stop cancels periodic sweeps, sweep in progress is allowed to finish.
//
// Registrations are retained but never swept again.
// Stop is safe to call multiple times, it must not be called from a Sweep.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.loop.Wait()

		s.fireMu.Lock()
		s.stopped.Store(true)
		close(s.jobs)
		s.fireMu.Unlock()

		s.workers.Wait()

		if s.log != nil {
			s.log.Important(s.ctx, "sweeper stopped", "targets", s.targets.Size())
		}
	})
}

// SweepNow sweeps all registered targets synchronously and returns their count.
//
// It does nothing once sweeper is stopped.
func (s *Sweeper) SweepNow(ctx context.Context) int {
	return s.fire(ctxd.AddFields(ctx, "sweeper", s.config.Name))
}

func (s *Sweeper) run() {
	defer s.loop.Done()

	// Fixed delay: next interval starts after previous fire is complete.
	timer := time.NewTimer(s.config.Interval)
	defer timer.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-timer.C:
			s.fire(s.ctx)
			timer.Reset(s.config.Interval)
		}
	}
}

func (s *Sweeper) fire(ctx context.Context) int {
	s.fireMu.Lock()
	defer s.fireMu.Unlock()

	if s.stopped.Load() {
		return 0
	}

	var (
		now     = time.Now()
		wg      sync.WaitGroup
		targets = make(map[int64]Sweepable, s.targets.Size())
	)

	s.targets.Range(func(id int64, target Sweepable) bool {
		targets[id] = target

		return true
	})

	wg.Add(len(targets))

	for id, target := range targets {
		s.jobs <- sweepJob{ctx: ctx, id: id, target: target, now: now, wg: &wg}
	}

	wg.Wait()

	if s.log != nil && len(targets) > 0 {
		s.log.Debug(ctx, "swept targets",
			"count", len(targets),
			"elapsed", time.Since(now).String(),
		)
	}

	if s.stat != nil {
		s.stat.Add(ctx, MetricSweep, 1, "name", s.config.Name)
		s.stat.Set(ctx, MetricSweepTargets, float64(len(targets)), "name", s.config.Name)
	}

	return len(targets)
}

func (s *Sweeper) work() {
	defer s.workers.Done()

	for j := range s.jobs {
		s.sweep(j)
	}
}

func (s *Sweeper) sweep(j sweepJob) {
	defer j.wg.Done()

	completed := false

	defer func() {
		if completed {
			return
		}

		var err error

		if r := recover(); r != nil {
			err = fmt.Errorf("%w: target %d: %v\n%s", ErrBackgroundTaskFault, j.id, r, debug.Stack())
		} else {
			// Sweep neither returned nor panicked, this goroutine is exiting (runtime.Goexit).
			err = fmt.Errorf("%w: target %d: sweep exited goroutine", ErrBackgroundTaskFault, j.id)

			s.workers.Add(1)

			go s.work()
		}

		s.reportFault(j, err)
	}()

	j.target.Sweep(j.ctx, j.now)

	completed = true
}

func (s *Sweeper) reportFault(j sweepJob, err error) {
	if s.log != nil {
		s.log.Error(j.ctx, "sweep failed", "id", j.id, "error", err)
	}

	if s.stat != nil {
		s.stat.Add(j.ctx, MetricSweepFault, 1, "name", s.config.Name)
	}

	if s.config.OnFault == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil && s.log != nil {
			s.log.Error(j.ctx, "fault hook failed", "id", j.id, "panic", fmt.Sprint(r))
		}
	}()

	s.config.OnFault(j.id, err)
}
