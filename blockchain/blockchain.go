// Package blockchain defines the capability model shared by every chain
// this module can swap: the Blockchain identity, the Arbitrating/Accordant
// role split, and the orthogonal capabilities (Keys, Address, Timelock,
// Signatures, Fee, Onchain, Commit) a concrete chain package offers. It
// deliberately stays at the level of Go interfaces over the teacher's own
// internal/chain.Params table (network/address-prefix bookkeeping) rather
// than duplicating it — bitcoin and monero, the concrete chain packages
// this module ships, read chain parameters the way internal/chain already
// lays them out.
package blockchain

import (
	"io"

	"github.com/klingon-exchange/farcaster-go/consensus"
	"github.com/klingon-exchange/farcaster-go/crypto"
	"github.com/klingon-exchange/farcaster-go/fcerr"
)

// Network selects which network a swap runs on. The three values are the
// exact u32 wire tags from the protocol's offer body.
type Network uint32

// The three supported networks. Values have the high bit set, keeping
// network selectors visually distinct from amounts on the wire.
const (
	NetworkMainnet Network = 0x80000080
	NetworkTestnet Network = 0x80000081
	NetworkLocal   Network = 0x80000082
)

func (n Network) String() string {
	switch n {
	case NetworkMainnet:
		return "mainnet"
	case NetworkTestnet:
		return "testnet"
	case NetworkLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Encode writes the network selector as a little-endian u32.
func (n Network) Encode(w io.Writer) (int, error) {
	return consensus.WriteU32(w, uint32(n))
}

// DecodeNetwork reads a Network and validates it against the three known
// values.
func DecodeNetwork(r io.Reader) (Network, error) {
	v, err := consensus.ReadU32(r)
	if err != nil {
		return 0, err
	}
	n := Network(v)
	switch n {
	case NetworkMainnet, NetworkTestnet, NetworkLocal:
		return n, nil
	default:
		return 0, fcerr.New(fcerr.KindParseFailed, "network")
	}
}

// ChainTag is the u8 wire tag identifying which concrete arbitrating
// blockchain an Offer names.
type ChainTag uint8

// Known arbitrating chain tags. More can be added by a collaborator
// without touching this module, same as the Rust source's open-ended
// Blockchain trait.
const (
	ChainBitcoin ChainTag = 0x00
)

// AccordantTag is the u8 wire tag identifying the accordant blockchain.
// It shares the byte space conceptually with ChainTag but is kept as a
// distinct type since an accordant chain can never appear where an
// arbitrating tag is expected.
type AccordantTag uint8

// Known accordant chain tags.
const (
	ChainMonero AccordantTag = 0x00
)

// Role tags whether a blockchain plays the arbitrating or accordant role
// in a swap.
type Role uint8

const (
	RoleArbitrating Role = iota + 1
	RoleAccordant
)

func (r Role) String() string {
	switch r {
	case RoleArbitrating:
		return "arbitrating"
	case RoleAccordant:
		return "accordant"
	default:
		return "unknown"
	}
}

// Blockchain identifies one chain: its global identifier string (e.g.
// "btc", "xmr") and the network it runs on.
type Blockchain interface {
	ID() string
	ChainNetwork() Network
}

// Keys is the capability of providing concrete public/private key types.
// Both are just required to round-trip through canonical bytes; the core
// never inspects their internal structure.
type PublicKey = crypto.CanonicalBytes

// Address is the on-chain address capability.
type Address interface {
	crypto.CanonicalBytes
	String() string
}

// Timelock is a relative-block-count style spend condition.
type Timelock interface {
	crypto.CanonicalBytes
	Blocks() uint32
}

// Message is the signing-capability's message type (the bytes that get
// signed).
type Message = crypto.CanonicalBytes

// Signature is a completed signature.
type Signature = crypto.CanonicalBytes

// AdaptorSignature is a pre-signature that, once completed with a secret
// scalar known only to the collaborator's crypto layer, both becomes a
// valid Signature and reveals that scalar to any observer.
type AdaptorSignature = crypto.CanonicalBytes

// FeeStrategyKind tags which shape a FeeStrategy takes on the wire.
type FeeStrategyKind uint8

const (
	FeeFixed FeeStrategyKind = 0x01
	FeeRange FeeStrategyKind = 0x02
)

// FeeStrategy is a fee-unit scalar or range a Lock transaction's fee must
// satisfy. Values holds one entry for Fixed, two (low, high) for Range.
type FeeStrategy struct {
	Kind   FeeStrategyKind
	Values []uint64
}

// NewFixedFee builds a Fixed fee strategy.
func NewFixedFee(value uint64) FeeStrategy {
	return FeeStrategy{Kind: FeeFixed, Values: []uint64{value}}
}

// NewRangeFee builds a Range fee strategy.
func NewRangeFee(low, high uint64) FeeStrategy {
	return FeeStrategy{Kind: FeeRange, Values: []uint64{low, high}}
}

// Encode writes the fee strategy kind tag followed by its values.
func (f FeeStrategy) Encode(w io.Writer) (int, error) {
	n, err := consensus.WriteU8(w, uint8(f.Kind))
	if err != nil {
		return n, err
	}
	for _, v := range f.Values {
		m, err := consensus.WriteU64(w, v)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// DecodeFeeStrategy reads a fee strategy.
func DecodeFeeStrategy(r io.Reader) (FeeStrategy, error) {
	kind, err := consensus.ReadU8(r)
	if err != nil {
		return FeeStrategy{}, err
	}
	var count int
	switch FeeStrategyKind(kind) {
	case FeeFixed:
		count = 1
	case FeeRange:
		count = 2
	default:
		return FeeStrategy{}, fcerr.New(fcerr.KindUnknownType, "fee_strategy_kind")
	}
	values := make([]uint64, count)
	for i := 0; i < count; i++ {
		v, err := consensus.ReadU64(r)
		if err != nil {
			return FeeStrategy{}, err
		}
		values[i] = v
	}
	return FeeStrategy{Kind: FeeStrategyKind(kind), Values: values}, nil
}

// Equal compares two fee strategies by kind and values. FeeStrategy
// carries a slice, so it cannot be compared with ==.
func (f FeeStrategy) Equal(other FeeStrategy) bool {
	if f.Kind != other.Kind || len(f.Values) != len(other.Values) {
		return false
	}
	for i, v := range f.Values {
		if other.Values[i] != v {
			return false
		}
	}
	return true
}

// Onchain is the capability of a partial (pre-signature, exchangeable)
// and final (broadcast-ready) transaction shape. Partial must cross the
// wire; Final is only ever handed back to the caller for broadcast, so it
// carries no encoding requirement here.
type PartialTransaction = crypto.CanonicalBytes

// Pair pins one arbitrating and one accordant blockchain together for a
// single swap. The role of each chain is given only by the field it is
// stored in; Blockchain carries no role, so nothing checks that the two
// chains really play different roles.
type Pair struct {
	Arbitrating Blockchain
	Accordant   Blockchain
}

// NewPair builds a Pair, rejecting a nil member with KindParseFailed.
func NewPair(arbitrating, accordant Blockchain) (Pair, error) {
	if arbitrating == nil || accordant == nil {
		return Pair{}, fcerr.New(fcerr.KindParseFailed, "pair")
	}
	return Pair{Arbitrating: arbitrating, Accordant: accordant}, nil
}
