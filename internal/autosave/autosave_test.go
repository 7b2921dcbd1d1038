package autosave

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeFlusher struct {
	mu      sync.Mutex
	calls   int
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeFlusher) Flush(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	started, release, err := f.started, f.release, f.err
	f.mu.Unlock()
	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if release != nil {
		<-release
	}
	return err
}

func (f *fakeFlusher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestClose_FinalFlushWithoutTicks(t *testing.T) {
	f := &fakeFlusher{}
	r := New(f, time.Hour, time.Hour, discard)
	r.Start(context.Background())

	require.NoError(t, r.Close(time.Second))
	assert.Equal(t, 1, f.count())

	assert.Error(t, r.Close(time.Second), "second close is rejected")
	assert.Equal(t, 1, f.count())
}

func TestClose_WithoutStart(t *testing.T) {
	f := &fakeFlusher{}
	r := New(f, time.Hour, 0, discard)
	require.NoError(t, r.Close(time.Second))
	assert.Equal(t, 1, f.count())
}

func TestInterval(t *testing.T) {
	f := &fakeFlusher{}
	r := New(f, 10*time.Millisecond, 0, discard)
	r.Start(context.Background())
	defer r.Close(time.Second)

	assert.Eventually(t, func() bool { return f.count() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestIdle(t *testing.T) {
	f := &fakeFlusher{}
	r := New(f, 0, 20*time.Millisecond, discard)
	r.Start(context.Background())
	defer r.Close(time.Second)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, f.count(), "no activity, no idle save")

	r.Notify()
	r.Notify()
	assert.Eventually(t, func() bool { return f.count() == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestClose_WaitsForInFlightSave(t *testing.T) {
	f := &fakeFlusher{started: make(chan struct{}, 1), release: make(chan struct{})}
	r := New(f, 0, time.Millisecond, discard)
	r.Start(context.Background())

	r.Notify()
	<-f.started

	closed := make(chan error, 1)
	go func() { closed <- r.Close(2 * time.Second) }()

	select {
	case <-closed:
		t.Fatal("Close returned while a save was in flight")
	case <-time.After(30 * time.Millisecond):
	}

	close(f.release)
	require.NoError(t, <-closed)
	assert.Equal(t, 2, f.count())
}

func TestClose_TimesOutOnHungSave(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	f := &fakeFlusher{release: release}
	r := New(f, time.Hour, 0, discard)
	r.Start(context.Background())

	start := time.Now()
	err := r.Close(50 * time.Millisecond)
	require.ErrorIs(t, err, ErrExitTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClose_ReturnsFlushError(t *testing.T) {
	boom := errors.New("disk full")
	f := &fakeFlusher{err: boom}
	r := New(f, time.Hour, 0, discard)
	r.Start(context.Background())
	assert.ErrorIs(t, r.Close(time.Second), boom)
}

func TestStop_OnContextCancel(t *testing.T) {
	f := &fakeFlusher{}
	r := New(f, 5*time.Millisecond, 0, discard)
	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	select {
	case <-r.done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on cancel")
	}
	require.NoError(t, r.Close(time.Second))
}
