// Package asynchook decorates a statefile.Hooks so events are delivered on
// worker goroutines instead of the caller's. Hooks run inline on the cache's
// read and write paths, so a sink that does real work (telemetry upload, a
// slow logger) should sit behind this.
//
// Events are dropped, not queued unboundedly, when the queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{DiscardEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := statefile.New[string](statefile.Options[string]{
//	    Path:  statefile.DefaultPath("mytool"),
//	    Hooks: hooks, // or `raw` if the sink is cheap
//	})
package asynchook

import (
	"sync"
	"time"

	"github.com/unkn0wn-root/statefile"
)

type Hooks struct {
	inner statefile.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ statefile.Hooks = (*Hooks)(nil)

func New(inner statefile.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Close the caches using
// these hooks first; deliveries after Close are not safe.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) StaleLockReclaimed(lockPath string, age time.Duration) {
	h.try(func() { h.inner.StaleLockReclaimed(lockPath, age) })
}
func (h *Hooks) LockReclaimRace(lockPath string) {
	h.try(func() { h.inner.LockReclaimRace(lockPath) })
}
func (h *Hooks) LockTimeout(lockPath string, attempts int) {
	h.try(func() { h.inner.LockTimeout(lockPath, attempts) })
}
func (h *Hooks) SnapshotDiscarded(path, reason string) {
	h.try(func() { h.inner.SnapshotDiscarded(path, reason) })
}
func (h *Hooks) SnapshotRejected(path string) {
	h.try(func() { h.inner.SnapshotRejected(path) })
}
