package sloghooks

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newBufLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

func TestLockEventsAlwaysLogged(t *testing.T) {
	l, buf := newBufLogger(t)
	h := New(l, Options{DiscardEvery: 100, RejectEvery: 100})

	h.StaleLockReclaimed("/tmp/state.json.lock", 6*time.Second)
	h.LockReclaimRace("/tmp/state.json.lock")
	h.LockTimeout("/tmp/state.json.lock", 100)

	out := buf.String()
	for _, want := range []string{
		"statefile.stale_lock_reclaimed",
		"statefile.lock_reclaim_race",
		"statefile.lock_timeout",
		"attempts=100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDiscardSampling(t *testing.T) {
	l, buf := newBufLogger(t)
	h := New(l, Options{DiscardEvery: 3})

	for i := 0; i < 6; i++ {
		h.SnapshotDiscarded("/tmp/state.json", "gen_mismatch")
	}
	if got := strings.Count(buf.String(), "statefile.snapshot_discarded"); got != 2 {
		t.Fatalf("logged %d discards of 6 at every=3, want 2", got)
	}
}

func TestCorruptDiscardIsWarn(t *testing.T) {
	l, buf := newBufLogger(t)
	h := New(l, Options{})

	h.SnapshotDiscarded("/tmp/state.json", "corrupt")
	h.SnapshotDiscarded("/tmp/state.json", "file_changed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "level=WARN") {
		t.Errorf("corrupt discard not WARN: %s", lines[0])
	}
	if !strings.Contains(lines[1], "level=DEBUG") {
		t.Errorf("plain discard not DEBUG: %s", lines[1])
	}
}

func TestRedact(t *testing.T) {
	l, buf := newBufLogger(t)
	h := New(l, Options{Redact: RedactHash})

	h.SnapshotRejected("/home/alice/.local/state/tool/state.json")

	out := buf.String()
	if strings.Contains(out, "alice") {
		t.Fatalf("path leaked through redaction:\n%s", out)
	}
	if !strings.Contains(out, RedactHash("/home/alice/.local/state/tool/state.json")) {
		t.Fatalf("digest missing:\n%s", out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.StaleLockReclaimed("x", time.Second)
	h.LockReclaimRace("x")
	h.LockTimeout("x", 1)
	h.SnapshotDiscarded("x", "corrupt")
	h.SnapshotRejected("x")
}
