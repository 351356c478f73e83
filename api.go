package statefile

import (
	"context"
	"os"

	c "github.com/unkn0wn-root/statefile/codec"
	"github.com/unkn0wn-root/statefile/lockfile"
	"github.com/unkn0wn-root/statefile/snapstore"
)

// Cache is a key-value view over one backing state file shared between
// processes. V is the caller's value type; the on-disk record is a flat
// map[string]V serialized by a pluggable Codec (JSON unless configured).
//
// Instances are safe for concurrent use within a process. Two instances on
// the same path (same or different processes) coordinate only through the
// file lock: each holds its own snapshot, so one instance's writes reach the
// other on its next snapshot miss, not instantly.
type Cache[V any] interface {
	// Get returns the value under key. Served from the in-process snapshot
	// when one is held (no lock, no disk); otherwise the backing file is
	// read under its lock and snapshotted. ok=false means the key is absent;
	// errors mean the state could not be determined (lock timeout, IO
	// failure, malformed file) and never masquerade as an absent key.
	Get(ctx context.Context, key string) (v V, ok bool, err error)

	// Set updates one key: acquires the lock, re-reads the current record
	// from disk (never trusts the snapshot), applies the change, writes the
	// whole record back atomically, releases, and drops the snapshot.
	Set(ctx context.Context, key string, value V) error

	// Unset removes one key, with the same flow as Set. Removing an absent
	// key still rewrites the record.
	Unset(ctx context.Context, key string) error

	// All returns the full record, through the same snapshot path as Get.
	// The returned map is the caller's to mutate.
	All(ctx context.Context) (map[string]V, error)

	// Invalidate drops the in-process snapshot. The next read goes to disk.
	Invalidate()

	// Path returns the backing file path.
	Path() string

	// Close drops this instance's snapshot and closes the snapshot store
	// when the cache owns it. The backing file is left as is.
	Close(ctx context.Context) error
}

// Options configures a Cache. Only Path is required.
type Options[V any] struct {
	// Path is the backing file. Its parent directory is created if missing;
	// the file itself appears on the first write.
	Path string

	// Codec defines the on-disk record format. Defaults to
	// codec.JSON[map[string]V] (indented, human-diffable).
	Codec c.Codec[map[string]V]

	// Lock tunes sentinel-lock acquisition: staleness threshold, poll
	// interval, attempt budget. Zero fields get lockfile defaults
	// (5s / 10ms / 100).
	Lock lockfile.Config

	// FileMode for the backing file. 0 => 0o644.
	FileMode os.FileMode

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks

	// Snapshots holds the in-process snapshot bytes. Nil means a private
	// snapstore.Map. Provide a shared bounded store (snapstore/bigcache,
	// snapstore/ristretto) when one process holds many cache instances.
	Snapshots snapstore.Store

	// CloseSnapshots makes Close also close a caller-provided Snapshots
	// store. Set it only when this cache exclusively owns the store.
	// A private store (Snapshots == nil) is always closed.
	CloseSnapshots bool

	// Revalidate adds one os.Stat to snapshot hits, discarding the snapshot
	// when the file's mtime or size changed. Buys prompt visibility of other
	// processes' writes at the cost of the zero-IO hit path.
	Revalidate bool
}

// New validates opts and returns a ready Cache. No file IO happens beyond
// creating Path's parent directory; the backing file is read lazily.
func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
