package blockchain

import (
	"bytes"
	"testing"

	"github.com/klingon-exchange/farcaster-go/fcerr"
)

func TestNetworkRoundTrip(t *testing.T) {
	for _, n := range []Network{NetworkMainnet, NetworkTestnet, NetworkLocal} {
		var buf bytes.Buffer
		if _, err := n.Encode(&buf); err != nil {
			t.Fatalf("encode %v: %v", n, err)
		}
		got, err := DecodeNetwork(&buf)
		if err != nil {
			t.Fatalf("decode %v: %v", n, err)
		}
		if got != n {
			t.Fatalf("round trip mismatch: got %v want %v", got, n)
		}
	}
}

func TestDecodeNetworkRejectsUnknown(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Network(0x1).Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeNetwork(&buf); !fcerr.Is(err, fcerr.KindParseFailed) {
		t.Fatalf("expected KindParseFailed, got %v", err)
	}
}

func TestFixedFeeRoundTrip(t *testing.T) {
	f := NewFixedFee(100)
	var buf bytes.Buffer
	if _, err := f.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeFeeStrategy(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Equal(f) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, f)
	}
}

func TestRangeFeeRoundTrip(t *testing.T) {
	f := NewRangeFee(10, 20)
	var buf bytes.Buffer
	if _, err := f.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeFeeStrategy(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Equal(f) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, f)
	}
}

func TestFeeStrategyEqual(t *testing.T) {
	a := NewFixedFee(5)
	b := NewFixedFee(5)
	c := NewFixedFee(6)
	if !a.Equal(b) {
		t.Fatalf("expected equal fee strategies")
	}
	if a.Equal(c) {
		t.Fatalf("expected unequal fee strategies")
	}
	if a.Equal(NewRangeFee(5, 5)) {
		t.Fatalf("expected different kinds to compare unequal")
	}
}

func TestDecodeFeeStrategyUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0xFF)
	if _, err := DecodeFeeStrategy(&buf); !fcerr.Is(err, fcerr.KindUnknownType) {
		t.Fatalf("expected KindUnknownType, got %v", err)
	}
}

func TestNewPairRejectsNil(t *testing.T) {
	if _, err := NewPair(nil, nil); err == nil {
		t.Fatalf("expected an error for a nil pair")
	}
}
