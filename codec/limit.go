package codec

import "fmt"

// LimitCodec wraps another codec to enforce a maximum allowed payload size
// at Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
//
// Typical use: refuse to load a backing file that has grown far beyond what
// the tool could legitimately have written (runaway appends, corruption).
type LimitCodec[S any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner interface {
		Encode(S) ([]byte, error)
		Decode([]byte) (S, error)
	}
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload for Decode. If payload length exceeds MaxDecode, Decode returns
	// an error without invoking Inner.
	MaxDecode int
}

func (c LimitCodec[S]) Encode(s S) ([]byte, error) { return c.Inner.Encode(s) }

func (c LimitCodec[S]) Decode(b []byte) (S, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero S
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
