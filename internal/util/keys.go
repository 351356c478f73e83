package util

import (
	"crypto/sha256"
	"fmt"
)

// SnapshotKey returns the snapshot-store key for one cache instance: a short
// hash of the backing file path plus a per-instance id. The id keeps
// instances on the same path independent (each holds its own snapshot), and
// the hash keeps keys short and filesystem-layout-free in shared stores.
func SnapshotKey(path string, instance uint64) string {
	sum := sha256.Sum256([]byte(path))
	return fmt.Sprintf("snap:%x:%d", sum[:8], instance)
}
