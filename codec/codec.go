package codec

// Codec encodes/decodes a record S to []byte for the backing file.
//
// Encode output becomes the exact file content (written via an atomic
// rename), and Decode receives the exact file content, so a Codec fully
// defines the on-disk format. Implementations must be safe for concurrent
// use by multiple goroutines.
type Codec[S any] interface {
	Encode(S) ([]byte, error)
	Decode([]byte) (S, error)
}
