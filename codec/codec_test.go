package codec

import (
	"strings"
	"testing"
)

type profile struct {
	Name  string   `json:"name" yaml:"name" toml:"name" msgpack:"name" cbor:"name"`
	Count int      `json:"count" yaml:"count" toml:"count" msgpack:"count" cbor:"count"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty" msgpack:"tags,omitempty" cbor:"tags,omitempty"`
}

func TestJSONIsHumanDiffable(t *testing.T) {
	b, err := JSON[map[string]string]{}.Encode(map[string]string{"token": "abc", "user": "u1"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s := string(b)
	if !strings.HasSuffix(s, "\n") {
		t.Error("no trailing newline")
	}
	if !strings.Contains(s, "\n  \"token\"") {
		t.Errorf("not two-space indented:\n%s", s)
	}

	c, err := CompactJSON[map[string]string]{}.Encode(map[string]string{"token": "abc"})
	if err != nil {
		t.Fatalf("compact Encode: %v", err)
	}
	if strings.ContainsAny(string(c), "\n ") {
		t.Errorf("compact output has whitespace: %q", c)
	}
}

// The record layer treats a decode error as a malformed file, so what each
// codec does with empty input decides whether a truncated-to-zero file is
// loud or silently empty. JSON is loud; YAML yields a zero value.
func TestEmptyInputBehavior(t *testing.T) {
	if _, err := (JSON[profile]{}).Decode(nil); err == nil {
		t.Error("JSON decoded empty input without error")
	}
	v, err := YAML[profile]{}.Decode(nil)
	if err != nil {
		t.Errorf("YAML on empty input: %v", err)
	}
	if v.Name != "" || v.Count != 0 || v.Tags != nil {
		t.Errorf("YAML empty input = %+v, want zero", v)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	in := profile{Name: "ci", Count: 3, Tags: []string{"a", "b"}}
	b, err := YAML[profile]{}.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(b), "name: ci") {
		t.Errorf("unexpected YAML:\n%s", b)
	}
	out, err := YAML[profile]{}.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Name != in.Name || out.Count != in.Count || len(out.Tags) != 2 {
		t.Errorf("round trip = %+v", out)
	}
}

func TestLimitCodec(t *testing.T) {
	lc := LimitCodec[profile]{Inner: JSON[profile]{}, MaxDecode: 8}

	big, err := lc.Encode(profile{Name: "long-enough-to-exceed-the-limit"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := lc.Decode(big); err == nil {
		t.Fatal("oversized payload decoded without error")
	}

	// Under the limit the inner codec sees the payload untouched.
	lc.MaxDecode = len(big)
	out, err := lc.Decode(big)
	if err != nil {
		t.Fatalf("Decode under limit: %v", err)
	}
	if out.Name != "long-enough-to-exceed-the-limit" {
		t.Errorf("Name = %q", out.Name)
	}

	// 0 disables the check.
	lc.MaxDecode = 0
	if _, err := lc.Decode(big); err != nil {
		t.Errorf("MaxDecode=0 rejected payload: %v", err)
	}
}

func TestRawCodecsAreIdentity(t *testing.T) {
	b, err := Bytes{}.Encode([]byte{0x00, 0xff})
	if err != nil || string(b) != "\x00\xff" {
		t.Fatalf("Bytes.Encode = %q, %v", b, err)
	}
	s, err := String{}.Decode([]byte("hé"))
	if err != nil || s != "hé" {
		t.Fatalf("String.Decode = %q, %v", s, err)
	}
}
