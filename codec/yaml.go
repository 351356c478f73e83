package codec

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// YAML encodes records as two-space indented YAML. A common choice when the
// backing file doubles as a hand-editable config cache.
type YAML[S any] struct{}

func (YAML[S]) Encode(s S) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAML[S]) Decode(b []byte) (S, error) {
	var s S
	err := yaml.Unmarshal(b, &s)
	return s, err
}
