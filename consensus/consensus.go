// Package consensus implements the canonical, bit-exact binary codec shared
// by every wire type in this module: fixed-width little-endian primitives,
// u16-counted vectors, single-byte-tagged options, and u16-length-prefixed
// byte strings. It generalizes the length-prefixed framing idiom the
// teacher daemon already used for its own message transport
// (internal/node/stream_handler.go's readLengthPrefixed/writeLengthPrefixed,
// there big-endian and 4-byte; here little-endian and u16 per the wire
// format this module implements) to the full primitive set a protocol
// core needs.
package consensus

import (
	"encoding/binary"
	"io"

	"github.com/klingon-exchange/farcaster-go/fcerr"
)

// MaxVecLen is the largest element count a Vec's u16 prefix can express.
// Implementations must reject collections larger than this rather than
// silently truncate the length on encode.
const MaxVecLen = 65535

// Encodable is satisfied by any wire type this module defines directly
// (as opposed to a blockchain-specific canonical-bytes type, see
// crypto.CanonicalBytes).
type Encodable interface {
	Encode(w io.Writer) (int, error)
}

// Decodable constructs a T by reading it from r.
type Decodable[T any] func(r io.Reader) (T, error)

// WriteU8 writes a single byte.
func WriteU8(w io.Writer, v uint8) (int, error) {
	return w.Write([]byte{v})
}

// ReadU8 reads a single byte.
func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, eof(err)
	}
	return buf[0], nil
}

// WriteU16 writes v little-endian.
func WriteU16(w io.Writer, v uint16) (int, error) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return w.Write(buf[:])
}

// ReadU16 reads a little-endian u16.
func ReadU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, eof(err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// WriteU32 writes v little-endian.
func WriteU32(w io.Writer, v uint32) (int, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return w.Write(buf[:])
}

// ReadU32 reads a little-endian u32.
func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, eof(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteU64 writes v little-endian.
func WriteU64(w io.Writer, v uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.Write(buf[:])
}

// ReadU64 reads a little-endian u64.
func ReadU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, eof(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteBytes writes a u16-length-prefixed byte string.
func WriteBytes(w io.Writer, b []byte) (int, error) {
	if len(b) > MaxVecLen {
		return 0, fcerr.New(fcerr.KindTrailingBytes, "byte string too long")
	}
	n, err := WriteU16(w, uint16(len(b)))
	if err != nil {
		return n, err
	}
	m, err := w.Write(b)
	return n + m, err
}

// ReadBytes reads a u16-length-prefixed byte string.
func ReadBytes(r io.Reader) ([]byte, error) {
	n, err := ReadU16(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, eof(err)
		}
	}
	return buf, nil
}

// WriteVec writes a u16 element count followed by each element encoded by
// encode, in order.
func WriteVec[T any](w io.Writer, items []T, encode func(io.Writer, T) (int, error)) (int, error) {
	if len(items) > MaxVecLen {
		return 0, fcerr.New(fcerr.KindTrailingBytes, "vector too long")
	}
	total, err := WriteU16(w, uint16(len(items)))
	if err != nil {
		return total, err
	}
	for _, item := range items {
		n, err := encode(w, item)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadVec reads a u16 element count followed by that many elements, each
// decoded by decode.
func ReadVec[T any](r io.Reader, decode func(io.Reader) (T, error)) ([]T, error) {
	n, err := ReadU16(r)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, n)
	for i := uint16(0); i < n; i++ {
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// WriteOption writes a single presence byte (0 absent, 1 present) followed
// by the value's encoding when present.
func WriteOption[T any](w io.Writer, v *T, encode func(io.Writer, T) (int, error)) (int, error) {
	if v == nil {
		return WriteU8(w, 0)
	}
	n, err := WriteU8(w, 1)
	if err != nil {
		return n, err
	}
	m, err := encode(w, *v)
	return n + m, err
}

// ReadOption reads an option's presence tag and, if present, its value.
func ReadOption[T any](r io.Reader, decode func(io.Reader) (T, error)) (*T, error) {
	tag, err := ReadU8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, fcerr.New(fcerr.KindParseFailed, "option tag")
	}
}

func eof(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fcerr.New(fcerr.KindUnexpectedEOF, "")
	}
	return fcerr.Wrap(err)
}
