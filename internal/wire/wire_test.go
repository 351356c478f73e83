package wire

import (
	"bytes"
	"math"
	"testing"
)

func mustDecode(t *testing.T, b []byte) Entry {
	t.Helper()
	e, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return e
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		gen     uint64
		mtime   int64
		size    int64
		payload []byte
	}{
		{0, 0, 0, nil},
		{42, 1724630400000000000, 512, []byte(`{"a":1}`)},
		{math.MaxUint64, -1, math.MaxInt64, []byte{0, 1, 2, 3, 4}}, // pre-1970 mtime is legal
	}
	for _, tc := range cases {
		enc := Encode(tc.gen, tc.mtime, tc.size, tc.payload)
		e := mustDecode(t, enc)
		if e.Gen != tc.gen || e.MtimeNano != tc.mtime || e.Size != tc.size {
			t.Fatalf("header mismatch: got (%d,%d,%d) want (%d,%d,%d)",
				e.Gen, e.MtimeNano, e.Size, tc.gen, tc.mtime, tc.size)
		}
		if !bytes.Equal(e.Payload, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", e.Payload, tc.payload)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode(7, 7, 7, []byte("x"))
	enc = append(enc, 0xDE, 0xAD)
	if _, err := Decode(enc); err != ErrCorrupt {
		t.Fatalf("err = %v, want ErrCorrupt on trailing bytes", err)
	}
}

func TestRejectsCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode(1, 2, 3, []byte("abc"))

	t.Run("short buffer", func(t *testing.T) {
		if _, err := Decode(enc[:hdrLen-1]); err != ErrCorrupt {
			t.Fatalf("err = %v, want ErrCorrupt", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), enc...)
		bad[0] ^= 0xFF
		if _, err := Decode(bad); err != ErrCorrupt {
			t.Fatalf("err = %v, want ErrCorrupt", err)
		}
	})

	t.Run("bad version", func(t *testing.T) {
		bad := append([]byte(nil), enc...)
		bad[4] = version + 1
		if _, err := Decode(bad); err != ErrCorrupt {
			t.Fatalf("err = %v, want ErrCorrupt", err)
		}
	})

	t.Run("truncated payload", func(t *testing.T) {
		if _, err := Decode(enc[:len(enc)-1]); err != ErrCorrupt {
			t.Fatalf("err = %v, want ErrCorrupt", err)
		}
	})

	t.Run("foreign bytes", func(t *testing.T) {
		if _, err := Decode([]byte("not a snapshot entry at all")); err != ErrCorrupt {
			t.Fatalf("err = %v, want ErrCorrupt", err)
		}
	})
}
