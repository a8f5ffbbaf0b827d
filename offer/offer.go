// Package offer implements the maker-facing negotiation layer: the
// immutable Offer terms, the fluent Buy/Sell builder DSL, and the
// PublicOffer envelope that attaches a peer identity and the
// "FCSWAP"-magic wire framing. Encoding follows consensus's codec rules
// directly, the same way the teacher's internal/swap.Offer sits on top
// of its own length-prefixed framing in internal/node/stream_handler.go.
package offer

import (
	"io"
	"net"

	"github.com/klingon-exchange/farcaster-go/blockchain"
	"github.com/klingon-exchange/farcaster-go/consensus"
	"github.com/klingon-exchange/farcaster-go/fcerr"
)

// MakerRole tags which side of the swap the offer's maker plays.
type MakerRole uint8

const (
	RoleAlice MakerRole = 0x01
	RoleBob   MakerRole = 0x02
)

func (r MakerRole) String() string {
	switch r {
	case RoleAlice:
		return "alice"
	case RoleBob:
		return "bob"
	default:
		return "unknown"
	}
}

// OfferVersion is the only offer-body version this module encodes.
const OfferVersion uint16 = 0x0002

// Offer is the immutable, negotiated set of swap terms. The accordant
// chain is always Monero in this wire format (see Encode) — the module's
// only shipped accordant capability — so it is not itself an encoded
// field, only a constructed one on Offer for builder-API symmetry with
// Arbitrating.
type Offer struct {
	Network            blockchain.Network
	Arbitrating        blockchain.ChainTag
	Accordant          blockchain.AccordantTag
	ArbitratingAmount  uint64
	AccordantAmount    uint64
	CancelTimelock     uint32
	PunishTimelock     uint32
	Fee                blockchain.FeeStrategy
	MakerRole          MakerRole
}

// Encode writes the offer body exactly as declared on the wire: version,
// network, arbitrating chain tag, both amounts, both timelocks, fee
// strategy, and maker role.
func (o Offer) Encode(w io.Writer) (int, error) {
	total := 0
	n, err := consensus.WriteU16(w, OfferVersion)
	total += n
	if err != nil {
		return total, err
	}
	n, err = o.Network.Encode(w)
	total += n
	if err != nil {
		return total, err
	}
	n, err = consensus.WriteU8(w, uint8(o.Arbitrating))
	total += n
	if err != nil {
		return total, err
	}
	n, err = consensus.WriteU64(w, o.ArbitratingAmount)
	total += n
	if err != nil {
		return total, err
	}
	n, err = consensus.WriteU64(w, o.AccordantAmount)
	total += n
	if err != nil {
		return total, err
	}
	n, err = consensus.WriteU32(w, o.CancelTimelock)
	total += n
	if err != nil {
		return total, err
	}
	n, err = consensus.WriteU32(w, o.PunishTimelock)
	total += n
	if err != nil {
		return total, err
	}
	n, err = o.Fee.Encode(w)
	total += n
	if err != nil {
		return total, err
	}
	n, err = consensus.WriteU8(w, uint8(o.MakerRole))
	total += n
	return total, err
}

// DecodeOffer reads an offer body. Accordant always decodes to Monero,
// the module's only shipped accordant chain.
func DecodeOffer(r io.Reader) (Offer, error) {
	var o Offer
	version, err := consensus.ReadU16(r)
	if err != nil {
		return o, err
	}
	if version != OfferVersion {
		return o, fcerr.New(fcerr.KindParseFailed, "offer_version")
	}
	if o.Network, err = blockchain.DecodeNetwork(r); err != nil {
		return o, err
	}
	tag, err := consensus.ReadU8(r)
	if err != nil {
		return o, err
	}
	o.Arbitrating = blockchain.ChainTag(tag)
	o.Accordant = blockchain.ChainMonero
	if o.ArbitratingAmount, err = consensus.ReadU64(r); err != nil {
		return o, err
	}
	if o.AccordantAmount, err = consensus.ReadU64(r); err != nil {
		return o, err
	}
	if o.CancelTimelock, err = consensus.ReadU32(r); err != nil {
		return o, err
	}
	if o.PunishTimelock, err = consensus.ReadU32(r); err != nil {
		return o, err
	}
	if o.Fee, err = blockchain.DecodeFeeStrategy(r); err != nil {
		return o, err
	}
	role, err := consensus.ReadU8(r)
	if err != nil {
		return o, err
	}
	switch MakerRole(role) {
	case RoleAlice, RoleBob:
		o.MakerRole = MakerRole(role)
	default:
		return o, fcerr.New(fcerr.KindParseFailed, "maker_role")
	}
	return o, nil
}

// Builder accumulates offer terms fluently. The zero value is not
// usable directly; start from Buy or Sell.
type Builder struct {
	makerRole MakerRole

	arbSet  bool
	arb     blockchain.ChainTag
	arbAmt  uint64

	accSet  bool
	acc     blockchain.AccordantTag
	accAmt  uint64

	timelocksSet bool
	cancel       uint32
	punish       uint32

	feeSet bool
	fee    blockchain.FeeStrategy

	networkSet bool
	network    blockchain.Network
}

// Buy opens a builder where the maker buys the arbitrating asset,
// becoming Alice.
func Buy(arb blockchain.ChainTag, arbAmount uint64) *Builder {
	return &Builder{makerRole: RoleAlice, arbSet: true, arb: arb, arbAmt: arbAmount}
}

// Sell opens a builder where the maker sells the arbitrating asset,
// becoming Bob.
func Sell(arb blockchain.ChainTag, arbAmount uint64) *Builder {
	return &Builder{makerRole: RoleBob, arbSet: true, arb: arb, arbAmt: arbAmount}
}

// With sets the accordant side of the trade.
func (b *Builder) With(acc blockchain.AccordantTag, accAmount uint64) *Builder {
	b.accSet = true
	b.acc = acc
	b.accAmt = accAmount
	return b
}

// WithTimelocks sets the cancel and punish timelocks.
func (b *Builder) WithTimelocks(cancel, punish uint32) *Builder {
	b.timelocksSet = true
	b.cancel = cancel
	b.punish = punish
	return b
}

// WithFee sets the fee strategy.
func (b *Builder) WithFee(fee blockchain.FeeStrategy) *Builder {
	b.feeSet = true
	b.fee = fee
	return b
}

// On sets the network.
func (b *Builder) On(network blockchain.Network) *Builder {
	b.networkSet = true
	b.network = network
	return b
}

// ToOffer returns the built Offer and true only if every required field
// was set and both amounts are strictly positive; otherwise it returns a
// zero Offer and false rather than a partially-built value.
func (b *Builder) ToOffer() (Offer, bool) {
	if !b.arbSet || !b.accSet || !b.timelocksSet || !b.feeSet || !b.networkSet {
		return Offer{}, false
	}
	if b.arbAmt == 0 || b.accAmt == 0 {
		return Offer{}, false
	}
	return Offer{
		Network:           b.network,
		Arbitrating:       b.arb,
		Accordant:         b.acc,
		ArbitratingAmount: b.arbAmt,
		AccordantAmount:   b.accAmt,
		CancelTimelock:    b.cancel,
		PunishTimelock:    b.punish,
		Fee:               b.fee,
		MakerRole:         b.makerRole,
	}, true
}

// Overlay tags the peer transport kind carried in a PeerInfo.
type Overlay uint8

const OverlayTCP Overlay = 0x01

// PeerInfo is a maker's advertised network identity: its node public key
// plus a fixed-layout transport address (overlay kind, IPv6-padded
// address, port).
type PeerInfo struct {
	NodePublicKey [33]byte
	Overlay       Overlay
	Addr          net.IP
	Port          uint16
}

// Encode writes the 33-byte compressed public key followed by the fixed
// overlay/addr/port layout: no length prefixes, every field is
// fixed-width.
func (p PeerInfo) Encode(w io.Writer) (int, error) {
	n, err := w.Write(p.NodePublicKey[:])
	total := n
	if err != nil {
		return total, err
	}
	m, err := consensus.WriteU8(w, uint8(p.Overlay))
	total += m
	if err != nil {
		return total, err
	}
	addr16 := p.Addr.To16()
	if addr16 == nil {
		addr16 = make(net.IP, 16)
	}
	m, err = w.Write(addr16)
	total += m
	if err != nil {
		return total, err
	}
	m, err = consensus.WriteU16(w, p.Port)
	total += m
	return total, err
}

// DecodePeerInfo reads a PeerInfo.
func DecodePeerInfo(r io.Reader) (PeerInfo, error) {
	var p PeerInfo
	if _, err := io.ReadFull(r, p.NodePublicKey[:]); err != nil {
		return p, fcerr.WrapKind(fcerr.KindUnexpectedEOF, "peer_node_pubkey", err)
	}
	overlay, err := consensus.ReadU8(r)
	if err != nil {
		return p, err
	}
	p.Overlay = Overlay(overlay)
	addr := make(net.IP, 16)
	if _, err := io.ReadFull(r, addr); err != nil {
		return p, fcerr.WrapKind(fcerr.KindUnexpectedEOF, "peer_addr", err)
	}
	p.Addr = addr
	if p.Port, err = consensus.ReadU16(r); err != nil {
		return p, err
	}
	return p, nil
}

// PublicOffer wraps an Offer with the magic-byte framing, an explicit
// version, and the maker's PeerInfo.
type PublicOffer struct {
	Version uint16
	Offer   Offer
	Peer    PeerInfo
}

// PublicOfferWireVersion is the only PublicOffer envelope version this
// module encodes.
const PublicOfferWireVersion uint16 = 1

// ToPublicV1 wraps o with peer into a version-1 PublicOffer.
func ToPublicV1(o Offer, peer PeerInfo) PublicOffer {
	return PublicOffer{Version: PublicOfferWireVersion, Offer: o, Peer: peer}
}

// Encode writes the magic bytes, version, offer body, and peer info in
// that order.
func (p PublicOffer) Encode(w io.Writer) (int, error) {
	n, err := consensus.WriteMagic(w)
	total := n
	if err != nil {
		return total, err
	}
	m, err := consensus.WriteU16(w, p.Version)
	total += m
	if err != nil {
		return total, err
	}
	m, err = p.Offer.Encode(w)
	total += m
	if err != nil {
		return total, err
	}
	m, err = p.Peer.Encode(w)
	total += m
	return total, err
}

// DecodePublicOffer reads a PublicOffer. A magic-byte mismatch returns
// KindInvalidMagicByte without consuming any further field, per the
// codec's framing contract.
func DecodePublicOffer(r io.Reader) (PublicOffer, error) {
	var p PublicOffer
	if err := consensus.ReadMagic(r); err != nil {
		return p, err
	}
	version, err := consensus.ReadU16(r)
	if err != nil {
		return p, err
	}
	p.Version = version
	if p.Offer, err = DecodeOffer(r); err != nil {
		return p, err
	}
	if p.Peer, err = DecodePeerInfo(r); err != nil {
		return p, err
	}
	return p, nil
}
