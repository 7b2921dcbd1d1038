// Package autosave flushes the ledger in the background while an interactive
// session is open: on a fixed interval, after a burst of activity goes idle,
// and once more on exit.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrExitTimeout is returned by Close when the final flush does not finish in time.
var ErrExitTimeout = errors.New("autosave: timed out waiting for final save")

// Flusher persists pending changes. ledger.Ledger satisfies it.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Runner owns the background save loop.
type Runner struct {
	flusher  Flusher
	interval time.Duration
	idle     time.Duration
	logger   *slog.Logger

	flushMu  sync.Mutex
	activity chan struct{}
	done     chan struct{}
	cancel   context.CancelFunc
	started  bool
	closed   sync.Once
}

// New returns a stopped runner. A zero interval or idle disables that trigger.
func New(f Flusher, interval, idle time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		flusher:  f,
		interval: interval,
		idle:     idle,
		logger:   logger,
		activity: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start launches the loop. It stops when ctx is done or Close is called.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.started = true
	go r.run(ctx)
}

// Notify records activity and restarts the idle timer. It never blocks.
func (r *Runner) Notify() {
	select {
	case r.activity <- struct{}{}:
	default:
	}
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)

	var tick <-chan time.Time
	if r.interval > 0 {
		t := time.NewTicker(r.interval)
		defer t.Stop()
		tick = t.C
	}
	idle := time.NewTimer(time.Hour)
	idle.Stop()
	defer idle.Stop()
	var idleC <-chan time.Time

	// Saves started by the loop run to completion even if ctx ends mid-save.
	saveCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			_ = r.flush(saveCtx, "interval")
		case <-r.activity:
			if r.idle > 0 {
				idle.Reset(r.idle)
				idleC = idle.C
			}
		case <-idleC:
			idleC = nil
			_ = r.flush(saveCtx, "idle")
		}
	}
}

func (r *Runner) flush(ctx context.Context, reason string) error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()
	if err := r.flusher.Flush(ctx); err != nil {
		r.logger.Error("autosave failed", "reason", reason, "error", err)
		return err
	}
	r.logger.Debug("autosave", "reason", reason)
	return nil
}

// Close stops the loop, waits for an in-flight save, and flushes one last
// time. The whole sequence is bounded by timeout.
func (r *Runner) Close(timeout time.Duration) error {
	err := fmt.Errorf("autosave: already closed")
	r.closed.Do(func() {
		err = r.close(timeout)
	})
	return err
}

func (r *Runner) close(timeout time.Duration) error {
	if r.started {
		r.cancel()
	} else {
		close(r.done)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	finished := make(chan error, 1)
	go func() {
		<-r.done
		finished <- r.flush(ctx, "exit")
	}()

	select {
	case err := <-finished:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%w after %s", ErrExitTimeout, timeout)
	}
}
