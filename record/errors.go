package record

import "fmt"

// MalformedError reports a backing file that exists but cannot be decoded.
// It is deliberately loud: a corrupt state file is never treated as an empty
// one, since the bytes may still hold data worth recovering. Repair by
// overwriting with Save or by deleting the file out of band.
type MalformedError struct {
	Path string // backing file path
	Err  error  // decode error from the codec
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("record: malformed backing file %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
