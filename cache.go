package statefile

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/unkn0wn-root/statefile/codec"
	"github.com/unkn0wn-root/statefile/internal/util"
	"github.com/unkn0wn-root/statefile/internal/wire"
	"github.com/unkn0wn-root/statefile/lockfile"
	"github.com/unkn0wn-root/statefile/record"
	"github.com/unkn0wn-root/statefile/snapstore"
)

// instanceSeq keeps snapshot keys distinct when instances share a store.
var instanceSeq atomic.Uint64

type cache[V any] struct {
	path     string
	codec    codec.Codec[map[string]V]
	store    *record.Store[map[string]V]
	snaps    snapstore.Store
	snapKey  string
	ownSnaps bool
	reval    bool
	log      Logger
	hooks    Hooks

	// gen counts local writes. Every snapshot entry is framed with the gen
	// observed before its disk read; a mismatch on a later hit means a write
	// raced that read, so the entry is dropped instead of served. This is
	// what keeps read-your-write true without serializing Get against Set.
	gen    atomic.Uint64
	closed atomic.Bool
}

var _ Cache[string] = (*cache[string])(nil)

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("statefile: path is required")
	}

	c := &cache[V]{
		path:  opts.Path,
		reval: opts.Revalidate,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.codec = opts.Codec
	if c.codec == nil {
		c.codec = codec.JSON[map[string]V]{}
	}

	if opts.Snapshots != nil {
		c.snaps = opts.Snapshots
		c.ownSnaps = opts.CloseSnapshots
	} else {
		c.snaps = snapstore.NewMap()
		c.ownSnaps = true
	}
	c.snapKey = util.SnapshotKey(opts.Path, instanceSeq.Add(1))

	store, err := record.New[map[string]V](opts.Path, record.Options[map[string]V]{
		Codec:    c.codec,
		Lock:     c.bridgeLockEvents(opts.Lock),
		FileMode: opts.FileMode,
	})
	if err != nil {
		return nil, err
	}
	c.store = store

	return c, nil
}

// bridgeLockEvents surfaces lock lifecycle events through the cache's logger
// and hooks, then forwards to any caller-provided OnEvent.
func (c *cache[V]) bridgeLockEvents(cfg lockfile.Config) lockfile.Config {
	user := cfg.OnEvent
	cfg.OnEvent = func(ev lockfile.Event) {
		switch ev.Kind {
		case lockfile.EventStaleReclaim:
			c.log.Warn("reclaimed stale lock", Fields{"lock": ev.Path, "age": ev.Age})
			c.hooks.StaleLockReclaimed(ev.Path, ev.Age)
		case lockfile.EventReclaimRace:
			c.log.Debug("lost stale-lock reclaim race", Fields{"lock": ev.Path, "attempt": ev.Attempt})
			c.hooks.LockReclaimRace(ev.Path)
		case lockfile.EventTimeout:
			c.log.Error("gave up acquiring lock", Fields{"lock": ev.Path, "attempts": ev.Attempt})
			c.hooks.LockTimeout(ev.Path, ev.Attempt)
		}
		if user != nil {
			user(ev)
		}
	}
	return cfg
}

func (c *cache[V]) Path() string { return c.path }

func (c *cache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	rec, err := c.load(ctx)
	if err != nil {
		return zero, false, err
	}
	v, ok := rec[key]
	if !ok {
		return zero, false, nil
	}
	return v, true, nil
}

func (c *cache[V]) All(ctx context.Context) (map[string]V, error) {
	rec, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = map[string]V{}
	}
	return rec, nil
}

func (c *cache[V]) Set(ctx context.Context, key string, value V) error {
	// The snapshot goes regardless of the write's outcome: after a lock
	// timeout or IO failure another process may well have written, so what
	// we hold is suspect either way.
	defer c.discardSnapshot()
	return c.store.Update(ctx, func(rec *map[string]V) error {
		if *rec == nil {
			*rec = make(map[string]V, 1)
		}
		(*rec)[key] = value
		return nil
	})
}

func (c *cache[V]) Unset(ctx context.Context, key string) error {
	defer c.discardSnapshot()
	return c.store.Update(ctx, func(rec *map[string]V) error {
		if *rec == nil {
			*rec = map[string]V{}
		}
		delete(*rec, key)
		return nil
	})
}

// Invalidate drops the snapshot and bumps the write generation so an
// in-flight read that began earlier cannot reinstall what it saw.
func (c *cache[V]) Invalidate() {
	c.discardSnapshot()
}

func (c *cache[V]) Close(_ context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.snaps.Del(c.snapKey)
	if c.ownSnaps {
		return c.snaps.Close()
	}
	return nil
}

func (c *cache[V]) discardSnapshot() {
	c.gen.Add(1)
	c.snaps.Del(c.snapKey)
}

// load returns the current record: from the snapshot when a valid one is
// held, otherwise from the backing file under its lock. A nil map means an
// empty record.
func (c *cache[V]) load(ctx context.Context) (map[string]V, error) {
	if entry, ok := c.snaps.Get(c.snapKey); ok {
		if rec, ok := c.decodeSnapshot(entry); ok {
			return rec, nil
		}
	}

	g0 := c.gen.Load()
	snap, err := c.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	c.storeSnapshot(g0, snap)
	return snap.Record, nil
}

// decodeSnapshot validates and decodes one snapshot entry. ok=false means
// the entry was dropped and the backing file should be read instead.
func (c *cache[V]) decodeSnapshot(b []byte) (map[string]V, bool) {
	entry, err := wire.Decode(b)
	if err != nil {
		c.dropSnapshot("corrupt")
		return nil, false
	}
	if entry.Gen != c.gen.Load() {
		// A local write raced the read that produced this entry.
		c.dropSnapshot("gen_mismatch")
		return nil, false
	}
	if c.reval {
		rev, err := record.StatRev(c.path)
		if err != nil || rev != (record.Rev{ModTimeNano: entry.MtimeNano, Size: entry.Size}) {
			c.dropSnapshot("file_changed")
			return nil, false
		}
	}
	if len(entry.Payload) == 0 {
		// snapshot of an absent backing file
		return nil, true
	}
	rec, err := c.codec.Decode(entry.Payload)
	if err != nil {
		c.dropSnapshot("value_decode")
		return nil, false
	}
	return rec, true
}

// storeSnapshot caches the raw record bytes unless a local write landed
// since the disk read began; installing the entry then would shadow that
// write until the next discard.
func (c *cache[V]) storeSnapshot(g0 uint64, snap record.Snapshot[map[string]V]) {
	if c.gen.Load() != g0 {
		return
	}
	entry := wire.Encode(g0, snap.Rev.ModTimeNano, snap.Rev.Size, snap.Raw)
	if !c.snaps.Set(c.snapKey, entry, int64(len(entry))) {
		c.log.Debug("snapshot store rejected entry", Fields{"path": c.path, "bytes": len(entry)})
		c.hooks.SnapshotRejected(c.path)
	}
}

func (c *cache[V]) dropSnapshot(reason string) {
	c.snaps.Del(c.snapKey)
	if reason == "corrupt" {
		c.log.Warn("dropped corrupt snapshot entry", Fields{"path": c.path})
	} else {
		c.log.Debug("snapshot discarded", Fields{"path": c.path, "reason": reason})
	}
	c.hooks.SnapshotDiscarded(c.path, reason)
}
