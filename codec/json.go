package codec

import (
	"bytes"
	"encoding/json"
)

// JSON is the default record codec. Encode produces two-space indented
// output with a trailing newline so backing files stay readable and diff
// cleanly under version control or support bundles.
type JSON[S any] struct{}

func (JSON[S]) Encode(s S) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (JSON[S]) Decode(b []byte) (S, error) {
	var s S
	err := json.Unmarshal(b, &s)
	return s, err
}

// CompactJSON encodes without indentation. Same wire compatibility as JSON;
// use it when the backing file is large and never read by humans.
type CompactJSON[S any] struct{}

func (CompactJSON[S]) Encode(s S) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (CompactJSON[S]) Decode(b []byte) (S, error) {
	var s S
	err := json.Unmarshal(b, &s)
	return s, err
}
