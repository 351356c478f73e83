//go:build !windows

package atomicfile

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFile uses renameio on Unix systems: temp file in the target
// directory, fsync, then rename over the destination.
func writeFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
