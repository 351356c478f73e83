package codec

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// TOML encodes records as TOML. Note TOML cannot represent nil values or
// top-level scalars; prefer it for struct records with concrete fields.
type TOML[S any] struct{}

func (TOML[S]) Encode(s S) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (TOML[S]) Decode(b []byte) (S, error) {
	var s S
	err := toml.Unmarshal(b, &s)
	return s, err
}
