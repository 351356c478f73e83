package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes records using vmihailenco/msgpack/v5. The zero value is
// ready to use.
//
// Msgpack is compact and fast but not human-diffable; reach for it only when
// record size dominates and nobody reads the backing file by hand. Use
// `msgpack:"fieldName"` tags for explicit field control.
type Msgpack[S any] struct{}

func (Msgpack[S]) Encode(s S) ([]byte, error) {
	return msgpack.Marshal(s)
}

func (Msgpack[S]) Decode(b []byte) (S, error) {
	var s S
	err := msgpack.Unmarshal(b, &s)
	return s, err
}
