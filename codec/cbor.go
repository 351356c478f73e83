package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// CBOR serializes records using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when byte-for-byte stable output matters, e.g. when the backing file is
// content-addressed or checksummed externally. Otherwise
// PreferredUnsortedEncOptions are used (sensible defaults).
// Time values are encoded as RFC3339Nano for stable timestamps.
type CBOR[S any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[struct{}] = CBOR[struct{}]{}

// NewCBOR constructs a CBOR codec.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions (smaller/faster defaults).
//
// Also sets time encoding to RFC3339Nano.
func NewCBOR[S any](deterministic bool) (CBOR[S], error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[S]{}, err
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return CBOR[S]{}, err
	}
	return CBOR[S]{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Should not use for prod just handy for package-level variables in tests/examples.
func MustCBOR[S any](deterministic bool) CBOR[S] {
	c, err := NewCBOR[S](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode encodes s as CBOR using the configured EncMode.
func (c CBOR[S]) Encode(s S) ([]byte, error) {
	return c.enc.Marshal(s)
}

// Decode decodes b into an S using the configured DecMode.
func (c CBOR[S]) Decode(b []byte) (S, error) {
	var s S
	err := c.dec.Unmarshal(b, &s)
	return s, err
}
