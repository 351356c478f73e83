package statefile

import (
	"errors"

	"github.com/unkn0wn-root/statefile/lockfile"
	"github.com/unkn0wn-root/statefile/record"
)

// IsLockTimeout reports whether err means the backing file's lock stayed
// held past the acquire budget. Typical handling is to retry the whole
// operation or tell the user another invocation is running.
func IsLockTimeout(err error) bool {
	return errors.Is(err, lockfile.ErrTimeout)
}

// IsMalformedRecord reports whether err means the backing file exists but
// cannot be decoded. The file is never silently replaced; recover by fixing
// it, deleting it, or overwriting via record.Store.Save.
func IsMalformedRecord(err error) bool {
	var m *record.MalformedError
	return errors.As(err, &m)
}
