// Package wire frames snapshot entries for the snapshot store. Each entry
// carries the writer's snapshot generation and the backing file's revision
// (mtime, size) alongside the encoded record payload, so a held snapshot can
// be validated without re-reading the file, and so entries survive living in
// a store shared with foreign data: anything that does not frame-check is
// treated as corrupt and dropped, never decoded.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("statefile: corrupt snapshot entry")
	magic4     = [...]byte{'S', 'T', 'F', '1'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry layout:
//
//	magic(4) | ver(1) | gen(u64 be) | mtime(i64 be) | size(i64 be) | vlen(u32 be) | payload(vlen)
//
// Decode is strict: trailing bytes after the payload are corruption.
const hdrLen = 4 + 1 + 8 + 8 + 8 + 4

// Entry is one decoded snapshot frame. Payload aliases the decoded buffer.
type Entry struct {
	Gen       uint64
	MtimeNano int64
	Size      int64
	Payload   []byte
}

// Encode frames payload with the writer's generation and the file revision
// the payload was read at.
func Encode(gen uint64, mtimeNano, size int64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], gen)
	buf.Write(u8[:])

	binary.BigEndian.PutUint64(u8[:], uint64(mtimeNano))
	buf.Write(u8[:])

	binary.BigEndian.PutUint64(u8[:], uint64(size))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode unframes an entry.
func Decode(b []byte) (Entry, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return Entry{}, ErrCorrupt
	}

	off := 5

	gen := binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	mtime := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	size := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // overflow-safe exact-length check
		return Entry{}, ErrCorrupt
	}

	return Entry{Gen: gen, MtimeNano: mtime, Size: size, Payload: b[off : off+vlen]}, nil
}
