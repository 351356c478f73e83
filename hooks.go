package statefile

import "time"

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the cache calls them
// synchronously, some on hot paths. Wrap with hooks/async when a sink may
// stall.
type Hooks interface {
	// An abandoned sentinel lock was deleted so this process could proceed.
	// age is how long past its last mtime the sentinel had sat.
	StaleLockReclaimed(lockPath string, age time.Duration)

	// A stale sentinel vanished while this process was deleting it (another
	// waiter won). Benign, but frequent races hint at too-short StaleAfter.
	LockReclaimRace(lockPath string)

	// The lock stayed held through the whole attempt budget. The operation
	// failed with a timeout error.
	LockTimeout(lockPath string, attempts int)

	// A held snapshot was dropped on read. reason is one of "corrupt",
	// "gen_mismatch", "value_decode", "file_changed".
	SnapshotDiscarded(path, reason string)

	// The snapshot store refused a write (backpressure/eviction). Reads fall
	// through to the backing file until a store accepts an entry again.
	SnapshotRejected(path string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) StaleLockReclaimed(string, time.Duration) {}
func (NopHooks) LockReclaimRace(string)                   {}
func (NopHooks) LockTimeout(string, int)                  {}
func (NopHooks) SnapshotDiscarded(string, string)         {}
func (NopHooks) SnapshotRejected(string)                  {}
