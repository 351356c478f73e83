package codec

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Protobuf serializes a proto.Message record in binary proto form.
// Construct with NewProtobuf, passing a constructor for the concrete message.
type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *statepb.Session { return &statepb.Session{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

// ProtoJSON is Protobuf's human-diffable sibling: the record is a
// proto.Message but the backing file holds indented protojson. Decoding
// tolerates unknown fields so older binaries can read files written by newer
// schemas.
type ProtoJSON[T proto.Message] struct {
	new func() T
}

func NewProtoJSON[T proto.Message](ctor func() T) ProtoJSON[T] {
	return ProtoJSON[T]{new: ctor}
}

func (c ProtoJSON[T]) Encode(v T) ([]byte, error) {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (c ProtoJSON[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(b, m)
	return m, err
}
