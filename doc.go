// Package statefile implements a process-safe key-value cache backed by a
// single file, for CLI tools that must persist small state (credentials,
// profiles, build ids) across invocations and coordinate concurrent
// invocations through the filesystem alone.
//
// Components:
//   - lockfile: sentinel-file mutual exclusion (O_EXCL create, stale reclaim
//     by mtime age, bounded polling). No flock and no helper daemon.
//   - atomicfile: whole-file replace via temp file + rename; readers never
//     see partial content.
//   - record: a typed record in one file; Load/Save/Update under the lock.
//   - codec: the on-disk format. JSON (indented) by default.
//   - snapstore: in-process snapshot bytes between reads.
//
// The Cache facade stitches these together per key-value record:
//
//	cache, _ := statefile.New[string](statefile.Options[string]{
//		Path: statefile.DefaultPath("mytool"),
//	})
//	defer cache.Close(ctx)
//
//	token, ok, err := cache.Get(ctx, "auth_token") // snapshot after first read
//	err = cache.Set(ctx, "auth_token", refreshed)  // lock, re-read, write, unlock
//
// Reads serve from the in-process snapshot once one is held; writes always
// re-read the file under its lock, apply one field, write the whole record
// back atomically, and drop the snapshot. Concurrent processes can interleave
// between one process's get and set (last writer wins per whole-record
// write), but the file always holds some complete record; it never corrupts.
// Callers that need read-modify-write atomicity across processes use
// record.Store.Update directly.
package statefile
