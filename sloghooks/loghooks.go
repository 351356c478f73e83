// Package sloghooks is a ready-made statefile.Hooks that reports through
// log/slog. Lock events are rare and always logged; snapshot events can fire
// on every read under churn, so those support sampling.
package sloghooks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/statefile"
)

type Options struct {
	// Sampling for the floodable events; 0/1 = log all.
	DiscardEvery uint64
	RejectEvery  uint64
	// Optional path redactor for logs that must not leak state-file
	// locations (they often embed usernames or project names). Defaults to
	// logging paths as-is; RedactHash is a drop-in hasher.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	discardCtr atomic.Uint64
	rejectCtr  atomic.Uint64
}

var _ statefile.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

// RedactHash replaces a path with a short stable digest.
func RedactHash(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:8])
}

func (h *Hooks) redact(p string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(p)
	}
	return p
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) StaleLockReclaimed(lockPath string, age time.Duration) {
	if h.l == nil {
		return
	}
	h.l.Warn("statefile.stale_lock_reclaimed",
		"lock", h.redact(lockPath),
		"age", age)
}

func (h *Hooks) LockReclaimRace(lockPath string) {
	if h.l == nil {
		return
	}
	h.l.Debug("statefile.lock_reclaim_race",
		"lock", h.redact(lockPath))
}

func (h *Hooks) LockTimeout(lockPath string, attempts int) {
	if h.l == nil {
		return
	}
	h.l.Error("statefile.lock_timeout",
		"lock", h.redact(lockPath),
		"attempts", attempts)
}

func (h *Hooks) SnapshotDiscarded(path, reason string) {
	if h.l == nil || !sample(h.opts.DiscardEvery, &h.discardCtr) {
		return
	}
	lvl := slog.LevelDebug
	if reason == "corrupt" {
		lvl = slog.LevelWarn
	}
	h.l.Log(context.Background(), lvl, "statefile.snapshot_discarded",
		"path", h.redact(path),
		"reason", reason)
}

func (h *Hooks) SnapshotRejected(path string) {
	if h.l == nil || !sample(h.opts.RejectEvery, &h.rejectCtr) {
		return
	}
	h.l.Warn("statefile.snapshot_rejected",
		"path", h.redact(path))
}
