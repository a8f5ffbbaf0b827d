package crypto

import (
	"bytes"
	"io"
	"testing"

	"github.com/klingon-exchange/farcaster-go/fcerr"
)

func TestSha256CommitValidate(t *testing.T) {
	c := Sha256Committer{}
	commitment, err := c.Commit([]byte("secret"))
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := c.Validate([]byte("secret"), commitment); err != nil {
		t.Fatalf("expected valid commitment, got %v", err)
	}
	if err := c.Validate([]byte("wrong"), commitment); !fcerr.Is(err, fcerr.KindInvalidCommitment) {
		t.Fatalf("expected KindInvalidCommitment, got %v", err)
	}
}

func TestSha256CommitmentCanonicalBytesRoundTrip(t *testing.T) {
	c := Sha256Committer{}
	commitment, _ := c.Commit([]byte("data"))
	got, err := Sha256CommitmentFromCanonicalBytes(commitment.AsCanonicalBytes())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != commitment {
		t.Fatalf("round trip mismatch")
	}
}

func TestSha256CommitmentFromCanonicalBytesRejectsWrongLength(t *testing.T) {
	if _, err := Sha256CommitmentFromCanonicalBytes([]byte("too short")); !fcerr.Is(err, fcerr.KindParseFailed) {
		t.Fatalf("expected KindParseFailed, got %v", err)
	}
}

type fakeValue []byte

func (f fakeValue) AsCanonicalBytes() []byte { return f }

func TestTaggedElementRoundTrip(t *testing.T) {
	el := TaggedElement[uint16, fakeValue]{Tag: 7, Value: fakeValue("value")}
	var buf bytes.Buffer
	encodeKey := func(w io.Writer, k uint16) (int, error) {
		return w.Write([]byte{byte(k), byte(k >> 8)})
	}
	encodeValue := func(w io.Writer, v fakeValue) (int, error) {
		return w.Write(v)
	}
	_, err := EncodeTaggedElement(&buf, el, encodeKey, encodeValue)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decodeKey := func(r io.Reader) (uint16, error) {
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		return uint16(b[0]) | uint16(b[1])<<8, nil
	}
	decodeValue := func(r io.Reader) (fakeValue, error) {
		b := make([]byte, len("value"))
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		return fakeValue(b), nil
	}
	got, err := DecodeTaggedElement(&buf, decodeKey, decodeValue)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tag != el.Tag || string(got.Value) != string(el.Value) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, el)
	}
}

func TestSharedKeyIdRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	id := SharedKeyId(99)
	if _, err := id.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSharedKeyId(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != id {
		t.Fatalf("round trip mismatch: got %v want %v", got, id)
	}
}
