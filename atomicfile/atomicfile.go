// Package atomicfile writes whole files atomically: content is staged in a
// temporary file inside the destination directory and moved into place with
// a single rename. Readers of the destination path observe either the
// previous content or the new content in full, never a truncated or
// interleaved mix, even if the writer crashes mid-write.
//
// Atomicity relies on rename staying within one filesystem, which is why the
// temporary file lives next to the destination rather than in os.TempDir.
package atomicfile

import "os"

// WriteFile replaces the file at path with data in one atomic step, creating
// it with perm if it does not exist. The parent directory must already
// exist. Durability (fsync) is applied to the staged file before the rename.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return writeFile(path, data, perm)
}
