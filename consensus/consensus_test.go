package consensus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klingon-exchange/farcaster-go/fcerr"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteU8(&buf, 0xAB); err != nil {
		t.Fatalf("write u8: %v", err)
	}
	if _, err := WriteU16(&buf, 0x1234); err != nil {
		t.Fatalf("write u16: %v", err)
	}
	if _, err := WriteU32(&buf, 0xDEADBEEF); err != nil {
		t.Fatalf("write u32: %v", err)
	}
	if _, err := WriteU64(&buf, 0x0123456789ABCDEF); err != nil {
		t.Fatalf("write u64: %v", err)
	}

	u8, err := ReadU8(&buf)
	if err != nil || u8 != 0xAB {
		t.Fatalf("read u8: got %x, %v", u8, err)
	}
	u16, err := ReadU16(&buf)
	if err != nil || u16 != 0x1234 {
		t.Fatalf("read u16: got %x, %v", u16, err)
	}
	u32, err := ReadU32(&buf)
	if err != nil || u32 != 0xDEADBEEF {
		t.Fatalf("read u32: got %x, %v", u32, err)
	}
	u64, err := ReadU64(&buf)
	if err != nil || u64 != 0x0123456789ABCDEF {
		t.Fatalf("read u64: got %x, %v", u64, err)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []byte("hello offer")
	if _, err := WriteBytes(&buf, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadBytes(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("mismatch: got %q want %q", got, want)
	}
}

func TestVecRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	items := []uint32{1, 2, 3, 4}
	if _, err := WriteVec(&buf, items, WriteU32); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadVec(&buf, ReadU32)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(items))
	}
	for i, v := range items {
		if got[i] != v {
			t.Fatalf("element %d mismatch: got %d want %d", i, got[i], v)
		}
	}
}

func TestOptionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	v := uint32(42)
	if _, err := WriteOption(&buf, &v, WriteU32); err != nil {
		t.Fatalf("write present: %v", err)
	}
	got, err := ReadOption(&buf, ReadU32)
	if err != nil {
		t.Fatalf("read present: %v", err)
	}
	if got == nil || *got != v {
		t.Fatalf("expected %d, got %v", v, got)
	}

	buf.Reset()
	if _, err := WriteOption[uint32](&buf, nil, WriteU32); err != nil {
		t.Fatalf("write absent: %v", err)
	}
	got, err = ReadOption(&buf, ReadU32)
	if err != nil {
		t.Fatalf("read absent: %v", err)
	}
	if got != nil {
		t.Fatalf("expected absent, got %v", got)
	}
}

func TestReadU8UnexpectedEOF(t *testing.T) {
	_, err := ReadU8(strings.NewReader(""))
	if !fcerr.Is(err, fcerr.KindUnexpectedEOF) {
		t.Fatalf("expected KindUnexpectedEOF, got %v", err)
	}
}

func TestMagicRoundTripAndMismatch(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteMagic(&buf); err != nil {
		t.Fatalf("write magic: %v", err)
	}
	if err := ReadMagic(&buf); err != nil {
		t.Fatalf("expected valid magic, got %v", err)
	}

	bad := bytes.NewReader([]byte("XXXXXX"))
	if err := ReadMagic(bad); !fcerr.Is(err, fcerr.KindInvalidMagicByte) {
		t.Fatalf("expected KindInvalidMagicByte, got %v", err)
	}
}

func TestVecRejectsOversizedLength(t *testing.T) {
	items := make([]uint8, MaxVecLen+1)
	var buf bytes.Buffer
	_, err := WriteVec(&buf, items, WriteU8)
	if !fcerr.Is(err, fcerr.KindTrailingBytes) {
		t.Fatalf("expected KindTrailingBytes, got %v", err)
	}
}
