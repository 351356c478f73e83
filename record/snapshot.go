package record

import (
	"os"
	"time"
)

// Rev identifies one on-disk revision of the backing file by mtime and size.
// Two equal Revs mean the file content is (almost certainly) unchanged; a
// differing Rev always means it changed. Good enough to cheaply detect
// foreign writes without reading the file.
type Rev struct {
	ModTimeNano int64
	Size        int64
}

// IsZero reports whether r carries no revision (file did not exist).
func (r Rev) IsZero() bool { return r == Rev{} }

// Time returns the revision's mtime.
func (r Rev) Time() time.Time { return time.Unix(0, r.ModTimeNano) }

func revOf(fi os.FileInfo) Rev {
	return Rev{ModTimeNano: fi.ModTime().UnixNano(), Size: fi.Size()}
}

// StatRev returns the current revision of the file at path without locking
// or reading it. A missing file yields the zero Rev.
func StatRev(path string) (Rev, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Rev{}, nil
		}
		return Rev{}, err
	}
	return revOf(fi), nil
}

// Snapshot is a point-in-time view of the backing file: the decoded record,
// the exact bytes it was decoded from, and the revision they were read at.
// Raw is nil and Rev is zero when the file did not exist.
type Snapshot[S any] struct {
	Record S
	Raw    []byte
	Rev    Rev
}
