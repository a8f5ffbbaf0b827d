// Package crypto defines the small set of wire-facing cryptographic
// abstractions this module's core is allowed to own: canonical byte
// encoding, tagged elements, shared-key identifiers, and the commitment
// capability used by the commit/reveal handshake. It deliberately stops
// short of any real elliptic-curve arithmetic, adaptor-signature
// construction, or DLEQ proof generation — those stay collaborator
// concerns per the module's scope. The one concrete piece of cryptography
// kept here, Sha256Commitment, is plain hashing (crypto/sha256), grounded
// on the teacher's own use of crypto/sha256 for HTLC secret hashing
// (internal/swap/htlc.go's GenerateSecret/VerifySecret), not a
// discrete-log or curve operation.
package crypto

import (
	"crypto/sha256"
	"io"

	"github.com/klingon-exchange/farcaster-go/consensus"
	"github.com/klingon-exchange/farcaster-go/fcerr"
	"github.com/klingon-exchange/farcaster-go/pkg/helpers"
)

// CanonicalBytes is satisfied by every keyable, signable, addressable, or
// transaction-shaped value that crosses the wire. Concrete packages
// (bitcoin, monero, ...) pair it with a FromCanonicalBytes([]byte) (T,
// error) free function, since Go has no generic associated-constructor
// constraint to express the round trip on the interface itself.
type CanonicalBytes interface {
	AsCanonicalBytes() []byte
}

// TaggedElement is a K || V pair, used for the extra/shared key vectors
// carried by the commit and parameter messages.
type TaggedElement[K comparable, V any] struct {
	Tag   K
	Value V
}

// EncodeTaggedElement writes a TaggedElement as encodeKey(tag) ||
// encodeValue(value).
func EncodeTaggedElement[K comparable, V any](
	w io.Writer,
	el TaggedElement[K, V],
	encodeKey func(io.Writer, K) (int, error),
	encodeValue func(io.Writer, V) (int, error),
) (int, error) {
	n, err := encodeKey(w, el.Tag)
	if err != nil {
		return n, err
	}
	m, err := encodeValue(w, el.Value)
	return n + m, err
}

// DecodeTaggedElement reads a TaggedElement.
func DecodeTaggedElement[K comparable, V any](
	r io.Reader,
	decodeKey func(io.Reader) (K, error),
	decodeValue func(io.Reader) (V, error),
) (TaggedElement[K, V], error) {
	var el TaggedElement[K, V]
	tag, err := decodeKey(r)
	if err != nil {
		return el, err
	}
	val, err := decodeValue(r)
	if err != nil {
		return el, err
	}
	el.Tag, el.Value = tag, val
	return el, nil
}

// SharedKeyId tags one of a blockchain's extra shared keys (e.g. a
// Monero view-key-derived shared secret used beyond the base spend/view
// pair).
type SharedKeyId uint16

// Encode writes the tag as a little-endian u16.
func (id SharedKeyId) Encode(w io.Writer) (int, error) {
	return consensus.WriteU16(w, uint16(id))
}

// DecodeSharedKeyId reads a SharedKeyId.
func DecodeSharedKeyId(r io.Reader) (SharedKeyId, error) {
	v, err := consensus.ReadU16(r)
	return SharedKeyId(v), err
}

// Commit is the commitment capability a blockchain may offer: commit
// binds to data without revealing it, Validate checks a later-revealed
// preimage against a stored commitment.
type Commit[C CanonicalBytes] interface {
	Commit(data []byte) (C, error)
	Validate(data []byte, commitment C) error
}

// Sha256Commitment is a plain SHA-256 digest used as a commitment value.
type Sha256Commitment [sha256.Size]byte

// AsCanonicalBytes returns the digest bytes.
func (c Sha256Commitment) AsCanonicalBytes() []byte {
	return c[:]
}

// Sha256CommitmentFromCanonicalBytes parses a 32-byte digest.
func Sha256CommitmentFromCanonicalBytes(b []byte) (Sha256Commitment, error) {
	var c Sha256Commitment
	if len(b) != sha256.Size {
		return c, fcerr.New(fcerr.KindParseFailed, "sha256 commitment")
	}
	copy(c[:], b)
	return c, nil
}

// Sha256Committer implements Commit[Sha256Commitment] by hashing the
// revealed bytes with SHA-256 and comparing in constant time.
type Sha256Committer struct{}

// Commit hashes data.
func (Sha256Committer) Commit(data []byte) (Sha256Commitment, error) {
	return sha256.Sum256(data), nil
}

// Validate recomputes the digest of data and compares it in constant time
// against commitment.
func (Sha256Committer) Validate(data []byte, commitment Sha256Commitment) error {
	got := sha256.Sum256(data)
	if !helpers.ConstantTimeCompare(got[:], commitment[:]) {
		return fcerr.New(fcerr.KindInvalidCommitment, "")
	}
	return nil
}

var _ Commit[Sha256Commitment] = Sha256Committer{}
