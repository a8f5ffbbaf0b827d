// Package monero provides concrete Accordant-side capability types: a
// canonical Ed25519 point-based public key, a private scalar, a
// stand-in subaddress, and the commitment capability the swap's
// commit/reveal handshake delegates to. Like bitcoin, it stops at
// capability types and never performs a real Monero transaction's
// ring-signature or RingCT math — see SPEC_FULL.md §1.
package monero

import (
	"crypto/sha256"

	"filippo.io/edwards25519"

	"github.com/klingon-exchange/farcaster-go/blockchain"
	"github.com/klingon-exchange/farcaster-go/crypto"
	"github.com/klingon-exchange/farcaster-go/fcerr"
	"github.com/klingon-exchange/farcaster-go/internal/chain"
)

// ID is this chain's Blockchain.ID() value.
const ID = "xmr"

// Chain identifies Monero on a given network, satisfying
// blockchain.Blockchain.
type Chain struct {
	Network blockchain.Network
}

// ID returns "xmr".
func (Chain) ID() string { return ID }

// ChainNetwork returns the network this Chain runs on.
func (c Chain) ChainNetwork() blockchain.Network { return c.Network }

var _ blockchain.Blockchain = Chain{}

func chainParams(network blockchain.Network) (*chain.Params, error) {
	var net chain.Network
	switch network {
	case blockchain.NetworkMainnet:
		net = chain.Mainnet
	case blockchain.NetworkTestnet, blockchain.NetworkLocal:
		net = chain.Testnet
	default:
		return nil, fcerr.New(fcerr.KindMissingNetwork, "monero")
	}
	params, ok := chain.Get("XMR", net)
	if !ok {
		return nil, fcerr.New(fcerr.KindMissingNetwork, "monero")
	}
	return params, nil
}

// PublicKey wraps an Ed25519 group element, the shape both Monero's
// spend and view public keys take.
type PublicKey struct {
	point *edwards25519.Point
}

// AsCanonicalBytes returns the compressed 32-byte point encoding.
func (k PublicKey) AsCanonicalBytes() []byte {
	if k.point == nil {
		return nil
	}
	return k.point.Bytes()
}

// PublicKeyFromCanonicalBytes decodes a compressed Ed25519 point,
// grounded on the teacher's own
// internal/node/crypto.go:new(edwards25519.Point).SetBytes usage for
// converting peer identity keys.
func PublicKeyFromCanonicalBytes(b []byte) (PublicKey, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return PublicKey{}, fcerr.WrapKind(fcerr.KindParseFailed, "monero_public_key", err)
	}
	return PublicKey{point: p}, nil
}

// PrivateKey wraps an Ed25519 scalar (reduced modulo the group order).
type PrivateKey struct {
	scalar *edwards25519.Scalar
}

// NewPrivateKey builds a scalar from a 64-byte uniform seed. Generating
// that seed's randomness is a caller concern (SPEC_FULL.md's non-goals
// exclude randomness generation from this module).
func NewPrivateKey(seed []byte) (PrivateKey, error) {
	s, err := new(edwards25519.Scalar).SetUniformBytes(seed)
	if err != nil {
		return PrivateKey{}, fcerr.WrapKind(fcerr.KindOther, "monero_private_key", err)
	}
	return PrivateKey{scalar: s}, nil
}

// PublicKey derives the corresponding public key, point = scalar * B.
func (k PrivateKey) PublicKey() PublicKey {
	if k.scalar == nil {
		return PublicKey{}
	}
	return PublicKey{point: new(edwards25519.Point).ScalarBaseMult(k.scalar)}
}

// Address is a stand-in Monero subaddress: a spend/view public key
// pair plus a network tag, encoded canonically as their concatenated
// compressed points (Monero's real base58-with-checksum format is a
// presentation detail left to a caller's wallet collaborator).
type Address struct {
	Spend   PublicKey
	View    PublicKey
	Network blockchain.Network
}

// AsCanonicalBytes returns spend || view, 64 bytes total.
func (a Address) AsCanonicalBytes() []byte {
	return append(append([]byte{}, a.Spend.AsCanonicalBytes()...), a.View.AsCanonicalBytes()...)
}

// String renders the address as a hex pair; a real deployment would
// base58-encode this with its network checksum prefix instead.
func (a Address) String() string {
	const hextable = "0123456789abcdef"
	b := a.AsCanonicalBytes()
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, hextable[c>>4], hextable[c&0x0f])
	}
	return string(out)
}

// AddressFromCanonicalBytes parses a spend||view byte pair.
func AddressFromCanonicalBytes(b []byte) (Address, error) {
	if len(b) != 64 {
		return Address{}, fcerr.New(fcerr.KindParseFailed, "monero_address")
	}
	spend, err := PublicKeyFromCanonicalBytes(b[:32])
	if err != nil {
		return Address{}, err
	}
	view, err := PublicKeyFromCanonicalBytes(b[32:])
	if err != nil {
		return Address{}, err
	}
	return Address{Spend: spend, View: view}, nil
}

var _ blockchain.Address = Address{}

// DeriveAddress builds a standalone address from a single public key
// used as both the spend and view key, matching the deriveAddress(pubkey,
// network) capability signature transaction.NewFunding expects. A real
// Monero wallet derives distinct spend/view keys; this module treats key
// management as an external concern (SPEC_FULL.md §1) and exposes only
// the wire shape.
func DeriveAddress(pubkey []byte, network blockchain.Network) (Address, error) {
	if _, err := chainParams(network); err != nil {
		return Address{}, err
	}
	spend, err := PublicKeyFromCanonicalBytes(pubkey)
	if err != nil {
		return Address{}, err
	}
	return Address{Spend: spend, View: spend, Network: network}, nil
}

// Commitment is a plain SHA-256 digest, reusing crypto.Sha256Committer's
// shape for Monero's commit/reveal participation — Monero brings no
// chain-specific commitment scheme into this protocol beyond the generic
// hash commitment every chain can offer.
type Commitment = crypto.Sha256Commitment

// Committer implements crypto.Commit[Commitment] for the Monero side of
// a swap.
type Committer struct {
	crypto.Sha256Committer
}

var _ crypto.Commit[Commitment] = Committer{}

// Timelock is Monero's equivalent relative-height spend condition: a
// count of blocks (Monero's ~2 minute block time stands in for
// Bitcoin-family CSV).
type Timelock struct {
	blocks uint32
}

// NewTimelock builds a Timelock from a relative block count.
func NewTimelock(blocks uint32) Timelock { return Timelock{blocks: blocks} }

// Blocks returns the relative block count.
func (t Timelock) Blocks() uint32 { return t.blocks }

// AsCanonicalBytes returns the block count as 4 little-endian bytes.
func (t Timelock) AsCanonicalBytes() []byte {
	return []byte{
		byte(t.blocks), byte(t.blocks >> 8), byte(t.blocks >> 16), byte(t.blocks >> 24),
	}
}

// TimelockFromCanonicalBytes parses a 4-byte little-endian block count.
func TimelockFromCanonicalBytes(b []byte) (Timelock, error) {
	if len(b) != 4 {
		return Timelock{}, fcerr.New(fcerr.KindParseFailed, "monero_timelock")
	}
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return Timelock{blocks: v}, nil
}

var _ blockchain.Timelock = Timelock{}

// hashSeed derives a 64-byte uniform seed from arbitrary key material,
// since edwards25519.Scalar.SetUniformBytes requires exactly 64 bytes.
// Grounded on the teacher's ed25519PrivToX25519's own SHA-512-based
// seed-expansion pattern in internal/node/crypto.go.
func hashSeed(material []byte) []byte {
	first := sha256.Sum256(material)
	second := sha256.Sum256(first[:])
	return append(first[:], second[:]...)
}

// NewPrivateKeyFromMaterial derives a private scalar from arbitrary-length
// key material via hashSeed, for callers that do not already have a
// uniform 64-byte seed on hand.
func NewPrivateKeyFromMaterial(material []byte) (PrivateKey, error) {
	return NewPrivateKey(hashSeed(material))
}
