package consensus

import (
	"bytes"
	"io"

	"github.com/klingon-exchange/farcaster-go/fcerr"
)

// PublicOfferMagic is the fixed six-byte ASCII prefix that opens every
// encoded PublicOffer on the wire.
var PublicOfferMagic = [6]byte{'F', 'C', 'S', 'W', 'A', 'P'}

// WriteMagic writes the magic prefix.
func WriteMagic(w io.Writer) (int, error) {
	return w.Write(PublicOfferMagic[:])
}

// ReadMagic reads six bytes and validates them against PublicOfferMagic.
// On mismatch it returns KindInvalidMagicByte without reading any further
// fields. The six bytes are consumed from r even on mismatch; the reader
// is not rewound.
func ReadMagic(r io.Reader) error {
	var buf [6]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return eof(err)
	}
	if !bytes.Equal(buf[:], PublicOfferMagic[:]) {
		return fcerr.New(fcerr.KindInvalidMagicByte, "")
	}
	return nil
}
