// Package lockfile provides cooperative, cross-process mutual exclusion for
// a single file, using a sentinel lock file created with O_EXCL.
//
// The protocol is deliberately boring so it works on any platform and any
// filesystem that gives atomic exclusive creates (every local one does):
// whoever creates <path>.lock holds the lock; everyone else polls at a fixed
// interval for a bounded number of attempts. A sentinel whose mtime is older
// than the staleness threshold is presumed abandoned by a crashed process
// and is deleted so a waiter can claim the path. There is no flock and no
// shared memory; processes coordinate through the filesystem alone, which is
// exactly what short-lived CLI invocations can rely on.
//
// Two rules follow from the staleness model. Critical sections must finish
// well inside StaleAfter, or another process may reclaim the lock out from
// under the holder. And losing a reclaim race is normal: when several
// waiters delete the same abandoned sentinel, one create wins and the rest
// simply keep polling.
package lockfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// Suffix is appended to the protected file's path to name the sentinel.
const Suffix = ".lock"

// Defaults applied by New for zero Config fields.
const (
	DefaultStaleAfter = 5 * time.Second
	DefaultInterval   = 10 * time.Millisecond
	DefaultAttempts   = 100
)

// ErrTimeout is returned (wrapped) when every attempt found the sentinel
// held and fresh. Check with errors.Is.
var ErrTimeout = errors.New("lockfile: acquire timed out")

// EventKind classifies lock lifecycle events.
type EventKind uint8

const (
	// EventStaleReclaim: an abandoned sentinel was deleted.
	EventStaleReclaim EventKind = iota + 1
	// EventReclaimRace: a stale sentinel vanished or changed while this
	// process was deleting it. Benign; the acquire loop keeps going.
	EventReclaimRace
	// EventTimeout: the attempt budget ran out.
	EventTimeout
)

// Event describes one lock lifecycle occurrence.
type Event struct {
	Kind    EventKind
	Path    string        // sentinel path
	Age     time.Duration // sentinel age at reclaim time (EventStaleReclaim)
	Attempt int           // 1-based attempt on which the event fired
}

// Config tunes the acquire loop. The zero value gets library defaults.
type Config struct {
	// StaleAfter is how old the sentinel's mtime must be before it is
	// presumed abandoned and reclaimed.
	StaleAfter time.Duration
	// Interval is the pause between attempts while the sentinel is held.
	Interval time.Duration
	// Attempts bounds how many times Acquire tries to create the sentinel
	// before giving up. Acquire never blocks indefinitely.
	Attempts int
	// OnEvent, when set, observes lock lifecycle events. It is called
	// synchronously from Acquire and must be fast and panic-free.
	OnEvent func(Event)
}

// Info is the diagnostic payload written into the sentinel. It tells a human
// (or support tooling) who held a lock; the acquire path never reads it.
// Staleness is judged from the sentinel's mtime alone.
type Info struct {
	PID        int       `json:"pid"`
	Hostname   string    `json:"hostname"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// Lock mediates access to the file at a given path. A Lock value carries no
// state about held locks (that lives in Handle) and may be shared.
type Lock struct {
	path string // sentinel path
	cfg  Config
}

// New returns a Lock guarding path. The sentinel lives at path+Suffix.
// Zero cfg fields take the package defaults.
func New(path string, cfg Config) *Lock {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultAttempts
	}
	return &Lock{path: path + Suffix, cfg: cfg}
}

// Path returns the sentinel path.
func (l *Lock) Path() string { return l.path }

// Acquire claims the lock, polling until it succeeds, the attempt budget
// runs out (ErrTimeout), or ctx is done. The returned Handle must be
// released by the caller.
func (l *Lock) Acquire(ctx context.Context) (*Handle, error) {
	start := time.Now()

	for attempt := 1; attempt <= l.cfg.Attempts; attempt++ {
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			// The lock is the file's existence; the payload is best-effort
			// diagnostics for whoever finds a leftover sentinel.
			writeInfo(f)
			f.Close()
			return &Handle{path: l.path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("lockfile: create %s: %w", l.path, err)
		}

		fi, statErr := os.Stat(l.path)
		if statErr != nil {
			if os.IsNotExist(statErr) {
				// Holder released between our create and stat. Try again now.
				continue
			}
			return nil, fmt.Errorf("lockfile: stat %s: %w", l.path, statErr)
		}

		if age := time.Since(fi.ModTime()); age > l.cfg.StaleAfter {
			switch rmErr := os.Remove(l.path); {
			case rmErr == nil:
				l.emit(Event{Kind: EventStaleReclaim, Path: l.path, Age: age, Attempt: attempt})
			case os.IsNotExist(rmErr):
				l.emit(Event{Kind: EventReclaimRace, Path: l.path, Attempt: attempt})
			default:
				// Another waiter may have reclaimed and re-created it already.
				// Not fatal either way; the loop keeps polling.
				l.emit(Event{Kind: EventReclaimRace, Path: l.path, Attempt: attempt})
			}
			continue
		}

		if attempt == l.cfg.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lockfile: acquire %s: %w", l.path, ctx.Err())
		case <-time.After(l.cfg.Interval):
		}
	}

	l.emit(Event{Kind: EventTimeout, Path: l.path, Attempt: l.cfg.Attempts})
	return nil, fmt.Errorf("lockfile: %s still held after %d attempts over %s: %w",
		l.path, l.cfg.Attempts, time.Since(start).Round(time.Millisecond), ErrTimeout)
}

// WithLock runs fn while holding the lock and releases it afterwards.
func (l *Lock) WithLock(ctx context.Context, fn func() error) error {
	h, err := l.Acquire(ctx)
	if err != nil {
		return err
	}
	defer h.Release()
	return fn()
}

func (l *Lock) emit(ev Event) {
	if l.cfg.OnEvent != nil {
		l.cfg.OnEvent(ev)
	}
}

func writeInfo(f *os.File) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	b, err := json.MarshalIndent(Info{
		PID:        os.Getpid(),
		Hostname:   hostname,
		AcquiredAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return
	}
	f.Write(append(b, '\n'))
}

// Handle is one acquired hold of a Lock.
type Handle struct {
	path     string
	released atomic.Bool
}

// Release deletes the sentinel. It is idempotent: releasing twice, or
// releasing after the sentinel was reclaimed by another process, returns
// nil. Safe on a nil Handle.
func (h *Handle) Release() error {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return nil
	}
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("lockfile: release %s: %w", h.path, err)
	}
	return nil
}

// ReadInfo parses the diagnostic payload of the sentinel at lockPath.
// Intended for support tooling; the payload may be missing or partial if the
// holder crashed mid-write.
func ReadInfo(lockPath string) (Info, error) {
	b, err := os.ReadFile(lockPath)
	if err != nil {
		return Info{}, err
	}
	var info Info
	if err := json.Unmarshal(b, &info); err != nil {
		return Info{}, fmt.Errorf("lockfile: parse %s: %w", lockPath, err)
	}
	return info, nil
}
