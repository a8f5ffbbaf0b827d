// Package protocol implements the typed messages exchanged between swap
// participants and the commit/reveal validation between them, grounded
// field-for-field on original_source/src/protocol/message.rs. It is
// deliberately decoupled from the swap state machine (package swap):
// protocol only knows how messages encode and validate against each
// other, never what phase a swap instance is in.
package protocol

import (
	"io"

	"github.com/klingon-exchange/farcaster-go/blockchain"
	"github.com/klingon-exchange/farcaster-go/consensus"
	"github.com/klingon-exchange/farcaster-go/crypto"
	"github.com/klingon-exchange/farcaster-go/fcerr"
)

// SwapId is the opaque identifier every protocol message carries as its
// first field. It is treated as 32 raw bytes on the wire, matching the
// source's u256-sized id without this module owning any integer
// semantics over it.
type SwapId [32]byte

// Encode writes the 32 raw identifier bytes.
func (id SwapId) Encode(w io.Writer) (int, error) {
	return w.Write(id[:])
}

// DecodeSwapId reads a SwapId.
func DecodeSwapId(r io.Reader) (SwapId, error) {
	var id SwapId
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return id, fcerr.WrapKind(fcerr.KindUnexpectedEOF, "swap_id", err)
	}
	return id, nil
}

func writeCanonical(w io.Writer, v crypto.CanonicalBytes) (int, error) {
	return consensus.WriteBytes(w, v.AsCanonicalBytes())
}

func readCanonical[T crypto.CanonicalBytes](r io.Reader, from func([]byte) (T, error)) (T, error) {
	var zero T
	b, err := consensus.ReadBytes(r)
	if err != nil {
		return zero, err
	}
	return from(b)
}

func encodeTaggedVec[K comparable, V crypto.CanonicalBytes](
	w io.Writer, items []crypto.TaggedElement[K, V], encodeKey func(io.Writer, K) (int, error),
) (int, error) {
	return consensus.WriteVec(w, items, func(w io.Writer, el crypto.TaggedElement[K, V]) (int, error) {
		return crypto.EncodeTaggedElement(w, el, encodeKey, func(w io.Writer, v V) (int, error) {
			return writeCanonical(w, v)
		})
	})
}

func decodeTaggedVec[K comparable, V crypto.CanonicalBytes](
	r io.Reader, decodeKey func(io.Reader) (K, error), from func([]byte) (V, error),
) ([]crypto.TaggedElement[K, V], error) {
	return consensus.ReadVec(r, func(r io.Reader) (crypto.TaggedElement[K, V], error) {
		return crypto.DecodeTaggedElement(r, decodeKey, func(r io.Reader) (V, error) {
			return readCanonical(r, from)
		})
	})
}

func encodeU16Tag(w io.Writer, tag uint16) (int, error) { return consensus.WriteU16(w, tag) }
func decodeU16Tag(r io.Reader) (uint16, error)          { return consensus.ReadU16(r) }

func encodeSharedKeyTag(w io.Writer, id crypto.SharedKeyId) (int, error) { return id.Encode(w) }
func decodeSharedKeyTag(r io.Reader) (crypto.SharedKeyId, error)         { return crypto.DecodeSharedKeyId(r) }

// CommitAliceParameters forces Alice to commit to the result of her
// cryptographic setup before receiving Bob's, removing adaptive
// behavior in the revealed parameters. Field order is exactly the
// source's: buy, cancel, refund, punish, adaptor, extra arbitrating
// keys, arbitrating shared keys, spend, extra accordant keys,
// accordant shared keys.
type CommitAliceParameters[C crypto.CanonicalBytes] struct {
	SwapId                 SwapId
	Buy                    C
	Cancel                 C
	Refund                 C
	Punish                 C
	Adaptor                C
	ExtraArbitratingKeys   []crypto.TaggedElement[uint16, C]
	ArbitratingSharedKeys  []crypto.TaggedElement[crypto.SharedKeyId, C]
	Spend                  C
	ExtraAccordantKeys     []crypto.TaggedElement[uint16, C]
	AccordantSharedKeys    []crypto.TaggedElement[crypto.SharedKeyId, C]
}

// Encode writes a CommitAliceParameters message.
func (m CommitAliceParameters[C]) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	for _, c := range []C{m.Buy, m.Cancel, m.Refund, m.Punish, m.Adaptor} {
		n, err := writeCanonical(w, c)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := encodeTaggedVec(w, m.ExtraArbitratingKeys, encodeU16Tag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.ArbitratingSharedKeys, encodeSharedKeyTag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeCanonical(w, m.Spend)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.ExtraAccordantKeys, encodeU16Tag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.AccordantSharedKeys, encodeSharedKeyTag)
	total += n
	return total, err
}

// DecodeCommitAliceParameters reads a CommitAliceParameters message. from
// parses a single commitment's canonical bytes (e.g.
// crypto.Sha256CommitmentFromCanonicalBytes).
func DecodeCommitAliceParameters[C crypto.CanonicalBytes](r io.Reader, from func([]byte) (C, error)) (CommitAliceParameters[C], error) {
	var m CommitAliceParameters[C]
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	fields := []*C{&m.Buy, &m.Cancel, &m.Refund, &m.Punish, &m.Adaptor}
	for _, f := range fields {
		if *f, err = readCanonical(r, from); err != nil {
			return m, err
		}
	}
	if m.ExtraArbitratingKeys, err = decodeTaggedVec(r, decodeU16Tag, from); err != nil {
		return m, err
	}
	if m.ArbitratingSharedKeys, err = decodeTaggedVec(r, decodeSharedKeyTag, from); err != nil {
		return m, err
	}
	if m.Spend, err = readCanonical(r, from); err != nil {
		return m, err
	}
	if m.ExtraAccordantKeys, err = decodeTaggedVec(r, decodeU16Tag, from); err != nil {
		return m, err
	}
	if m.AccordantSharedKeys, err = decodeTaggedVec(r, decodeSharedKeyTag, from); err != nil {
		return m, err
	}
	return m, nil
}

// CommitBobParameters is identical to CommitAliceParameters minus
// Punish: Bob never reveals a punish key, he has none.
type CommitBobParameters[C crypto.CanonicalBytes] struct {
	SwapId                SwapId
	Buy                   C
	Cancel                C
	Refund                C
	Adaptor               C
	ExtraArbitratingKeys  []crypto.TaggedElement[uint16, C]
	ArbitratingSharedKeys []crypto.TaggedElement[crypto.SharedKeyId, C]
	Spend                 C
	ExtraAccordantKeys    []crypto.TaggedElement[uint16, C]
	AccordantSharedKeys   []crypto.TaggedElement[crypto.SharedKeyId, C]
}

// Encode writes a CommitBobParameters message.
func (m CommitBobParameters[C]) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	for _, c := range []C{m.Buy, m.Cancel, m.Refund, m.Adaptor} {
		n, err := writeCanonical(w, c)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := encodeTaggedVec(w, m.ExtraArbitratingKeys, encodeU16Tag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.ArbitratingSharedKeys, encodeSharedKeyTag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeCanonical(w, m.Spend)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.ExtraAccordantKeys, encodeU16Tag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.AccordantSharedKeys, encodeSharedKeyTag)
	total += n
	return total, err
}

// DecodeCommitBobParameters reads a CommitBobParameters message.
func DecodeCommitBobParameters[C crypto.CanonicalBytes](r io.Reader, from func([]byte) (C, error)) (CommitBobParameters[C], error) {
	var m CommitBobParameters[C]
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	fields := []*C{&m.Buy, &m.Cancel, &m.Refund, &m.Adaptor}
	for _, f := range fields {
		if *f, err = readCanonical(r, from); err != nil {
			return m, err
		}
	}
	if m.ExtraArbitratingKeys, err = decodeTaggedVec(r, decodeU16Tag, from); err != nil {
		return m, err
	}
	if m.ArbitratingSharedKeys, err = decodeTaggedVec(r, decodeSharedKeyTag, from); err != nil {
		return m, err
	}
	if m.Spend, err = readCanonical(r, from); err != nil {
		return m, err
	}
	if m.ExtraAccordantKeys, err = decodeTaggedVec(r, decodeU16Tag, from); err != nil {
		return m, err
	}
	if m.AccordantSharedKeys, err = decodeTaggedVec(r, decodeSharedKeyTag, from); err != nil {
		return m, err
	}
	return m, nil
}

// RevealProof carries the cross-group discrete-log zero-knowledge proof
// alone.
type RevealProof[Pr crypto.CanonicalBytes] struct {
	SwapId SwapId
	Proof  Pr
}

// Encode writes a RevealProof message.
func (m RevealProof[Pr]) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	n, err := writeCanonical(w, m.Proof)
	return total + n, err
}

// DecodeRevealProof reads a RevealProof message.
func DecodeRevealProof[Pr crypto.CanonicalBytes](r io.Reader, from func([]byte) (Pr, error)) (RevealProof[Pr], error) {
	var m RevealProof[Pr]
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	m.Proof, err = readCanonical(r, from)
	return m, err
}

// RevealAliceParameters reveals the values committed to by
// CommitAliceParameters. Field order, including Punish's position right
// after Refund and before Adaptor, follows
// original_source/src/protocol/message.rs's Encodable impl exactly (see
// SPEC_FULL.md's Open Question resolution for why Punish is included
// despite the spec's prose suggesting otherwise).
type RevealAliceParameters[Pk, Qk, Rk, Sk, Addr crypto.CanonicalBytes] struct {
	SwapId                SwapId
	Buy                   Pk
	Cancel                Pk
	Refund                Pk
	Punish                Pk
	Adaptor               Pk
	ExtraArbitratingKeys  []crypto.TaggedElement[uint16, Pk]
	ArbitratingSharedKeys []crypto.TaggedElement[crypto.SharedKeyId, Rk]
	Spend                 Qk
	ExtraAccordantKeys    []crypto.TaggedElement[uint16, Qk]
	AccordantSharedKeys   []crypto.TaggedElement[crypto.SharedKeyId, Sk]
	Address               Addr
}

// Encode writes a RevealAliceParameters message.
func (m RevealAliceParameters[Pk, Qk, Rk, Sk, Addr]) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	for _, pk := range []Pk{m.Buy, m.Cancel, m.Refund, m.Punish, m.Adaptor} {
		n, err := writeCanonical(w, pk)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := encodeTaggedVec(w, m.ExtraArbitratingKeys, encodeU16Tag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.ArbitratingSharedKeys, encodeSharedKeyTag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeCanonical(w, m.Spend)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.ExtraAccordantKeys, encodeU16Tag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.AccordantSharedKeys, encodeSharedKeyTag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeCanonical(w, m.Address)
	total += n
	return total, err
}

// RevealAliceDecoders bundles the per-type-parameter canonical-bytes
// parsers DecodeRevealAliceParameters needs, since Go cannot infer five
// independent constructor functions from a single generic call the way
// it infers a single one.
type RevealAliceDecoders[Pk, Qk, Rk, Sk, Addr crypto.CanonicalBytes] struct {
	Pk   func([]byte) (Pk, error)
	Qk   func([]byte) (Qk, error)
	Rk   func([]byte) (Rk, error)
	Sk   func([]byte) (Sk, error)
	Addr func([]byte) (Addr, error)
}

// DecodeRevealAliceParameters reads a RevealAliceParameters message.
func DecodeRevealAliceParameters[Pk, Qk, Rk, Sk, Addr crypto.CanonicalBytes](
	r io.Reader, d RevealAliceDecoders[Pk, Qk, Rk, Sk, Addr],
) (RevealAliceParameters[Pk, Qk, Rk, Sk, Addr], error) {
	var m RevealAliceParameters[Pk, Qk, Rk, Sk, Addr]
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	fields := []*Pk{&m.Buy, &m.Cancel, &m.Refund, &m.Punish, &m.Adaptor}
	for _, f := range fields {
		if *f, err = readCanonical(r, d.Pk); err != nil {
			return m, err
		}
	}
	if m.ExtraArbitratingKeys, err = decodeTaggedVec(r, decodeU16Tag, d.Pk); err != nil {
		return m, err
	}
	if m.ArbitratingSharedKeys, err = decodeTaggedVec(r, decodeSharedKeyTag, d.Rk); err != nil {
		return m, err
	}
	if m.Spend, err = readCanonical(r, d.Qk); err != nil {
		return m, err
	}
	if m.ExtraAccordantKeys, err = decodeTaggedVec(r, decodeU16Tag, d.Qk); err != nil {
		return m, err
	}
	if m.AccordantSharedKeys, err = decodeTaggedVec(r, decodeSharedKeyTag, d.Sk); err != nil {
		return m, err
	}
	m.Address, err = readCanonical(r, d.Addr)
	return m, err
}

// IntoParameters converts a revealed Alice message into the shared
// Parameters bundle, carrying Punish across as Some(punish).
func (m RevealAliceParameters[Pk, Qk, Rk, Sk, Addr]) IntoParameters() Parameters[Pk, Qk, Rk, Sk, Addr] {
	punish := m.Punish
	return Parameters[Pk, Qk, Rk, Sk, Addr]{
		Buy: m.Buy, Cancel: m.Cancel, Refund: m.Refund, Punish: &punish, Adaptor: m.Adaptor,
		ExtraArbitratingKeys: m.ExtraArbitratingKeys, ArbitratingSharedKeys: m.ArbitratingSharedKeys,
		Spend: m.Spend, ExtraAccordantKeys: m.ExtraAccordantKeys, AccordantSharedKeys: m.AccordantSharedKeys,
		DestinationAddress: m.Address,
	}
}

// RevealBobParameters reveals the values committed to by
// CommitBobParameters: identical layout minus Punish.
type RevealBobParameters[Pk, Qk, Rk, Sk, Addr crypto.CanonicalBytes] struct {
	SwapId                SwapId
	Buy                   Pk
	Cancel                Pk
	Refund                Pk
	Adaptor               Pk
	ExtraArbitratingKeys  []crypto.TaggedElement[uint16, Pk]
	ArbitratingSharedKeys []crypto.TaggedElement[crypto.SharedKeyId, Rk]
	Spend                 Qk
	ExtraAccordantKeys    []crypto.TaggedElement[uint16, Qk]
	AccordantSharedKeys   []crypto.TaggedElement[crypto.SharedKeyId, Sk]
	Address               Addr
}

// Encode writes a RevealBobParameters message.
func (m RevealBobParameters[Pk, Qk, Rk, Sk, Addr]) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	for _, pk := range []Pk{m.Buy, m.Cancel, m.Refund, m.Adaptor} {
		n, err := writeCanonical(w, pk)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := encodeTaggedVec(w, m.ExtraArbitratingKeys, encodeU16Tag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.ArbitratingSharedKeys, encodeSharedKeyTag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeCanonical(w, m.Spend)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.ExtraAccordantKeys, encodeU16Tag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = encodeTaggedVec(w, m.AccordantSharedKeys, encodeSharedKeyTag)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeCanonical(w, m.Address)
	total += n
	return total, err
}

// DecodeRevealBobParameters reads a RevealBobParameters message.
func DecodeRevealBobParameters[Pk, Qk, Rk, Sk, Addr crypto.CanonicalBytes](
	r io.Reader, d RevealAliceDecoders[Pk, Qk, Rk, Sk, Addr],
) (RevealBobParameters[Pk, Qk, Rk, Sk, Addr], error) {
	var m RevealBobParameters[Pk, Qk, Rk, Sk, Addr]
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	fields := []*Pk{&m.Buy, &m.Cancel, &m.Refund, &m.Adaptor}
	for _, f := range fields {
		if *f, err = readCanonical(r, d.Pk); err != nil {
			return m, err
		}
	}
	if m.ExtraArbitratingKeys, err = decodeTaggedVec(r, decodeU16Tag, d.Pk); err != nil {
		return m, err
	}
	if m.ArbitratingSharedKeys, err = decodeTaggedVec(r, decodeSharedKeyTag, d.Rk); err != nil {
		return m, err
	}
	if m.Spend, err = readCanonical(r, d.Qk); err != nil {
		return m, err
	}
	if m.ExtraAccordantKeys, err = decodeTaggedVec(r, decodeU16Tag, d.Qk); err != nil {
		return m, err
	}
	if m.AccordantSharedKeys, err = decodeTaggedVec(r, decodeSharedKeyTag, d.Sk); err != nil {
		return m, err
	}
	m.Address, err = readCanonical(r, d.Addr)
	return m, err
}

// IntoParameters converts a revealed Bob message into the shared
// Parameters bundle. Bob never has a Punish key.
func (m RevealBobParameters[Pk, Qk, Rk, Sk, Addr]) IntoParameters() Parameters[Pk, Qk, Rk, Sk, Addr] {
	return Parameters[Pk, Qk, Rk, Sk, Addr]{
		Buy: m.Buy, Cancel: m.Cancel, Refund: m.Refund, Punish: nil, Adaptor: m.Adaptor,
		ExtraArbitratingKeys: m.ExtraArbitratingKeys, ArbitratingSharedKeys: m.ArbitratingSharedKeys,
		Spend: m.Spend, ExtraAccordantKeys: m.ExtraAccordantKeys, AccordantSharedKeys: m.AccordantSharedKeys,
		DestinationAddress: m.Address,
	}
}

// Parameters is the reconstructed cryptographic setup for one
// participant once their commitment has been opened: the five core
// keys (Punish only for Alice), the extra tagged key/shared-key
// vectors, the destination address, and the optional fields an offer
// fills in rather than commit/reveal (timelocks, fee strategy).
type Parameters[Pk, Qk, Rk, Sk, Addr crypto.CanonicalBytes] struct {
	Buy                   Pk
	Cancel                Pk
	Refund                Pk
	Punish                *Pk
	Adaptor               Pk
	ExtraArbitratingKeys  []crypto.TaggedElement[uint16, Pk]
	ArbitratingSharedKeys []crypto.TaggedElement[crypto.SharedKeyId, Rk]
	Spend                 Qk
	ExtraAccordantKeys    []crypto.TaggedElement[uint16, Qk]
	AccordantSharedKeys   []crypto.TaggedElement[crypto.SharedKeyId, Sk]
	DestinationAddress    Addr
	CancelTimelock        *blockchain.Timelock
	PunishTimelock        *blockchain.Timelock
	FeeStrategy           *blockchain.FeeStrategy
}

// CoreArbitratingSetup sends Bob's lock, cancel, and refund transactions
// to Alice along with his signature on cancel.
type CoreArbitratingSetup[Px, Sig crypto.CanonicalBytes] struct {
	SwapId    SwapId
	Lock      Px
	Cancel    Px
	Refund    Px
	CancelSig Sig
}

// Encode writes a CoreArbitratingSetup message.
func (m CoreArbitratingSetup[Px, Sig]) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	for _, px := range []Px{m.Lock, m.Cancel, m.Refund} {
		n, err := writeCanonical(w, px)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := writeCanonical(w, m.CancelSig)
	return total + n, err
}

// DecodeCoreArbitratingSetup reads a CoreArbitratingSetup message.
func DecodeCoreArbitratingSetup[Px, Sig crypto.CanonicalBytes](
	r io.Reader, fromPx func([]byte) (Px, error), fromSig func([]byte) (Sig, error),
) (CoreArbitratingSetup[Px, Sig], error) {
	var m CoreArbitratingSetup[Px, Sig]
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	fields := []*Px{&m.Lock, &m.Cancel, &m.Refund}
	for _, f := range fields {
		if *f, err = readCanonical(r, fromPx); err != nil {
			return m, err
		}
	}
	m.CancelSig, err = readCanonical(r, fromSig)
	return m, err
}

// RefundProcedureSignatures carries Alice's cancel signature and her
// adaptor signature on refund, bound to Bob's adaptor public key.
type RefundProcedureSignatures[Sig, EncSig crypto.CanonicalBytes] struct {
	SwapId           SwapId
	CancelSig        Sig
	RefundAdaptorSig EncSig
}

// Encode writes a RefundProcedureSignatures message.
func (m RefundProcedureSignatures[Sig, EncSig]) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	n, err := writeCanonical(w, m.CancelSig)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeCanonical(w, m.RefundAdaptorSig)
	return total + n, err
}

// DecodeRefundProcedureSignatures reads a RefundProcedureSignatures
// message.
func DecodeRefundProcedureSignatures[Sig, EncSig crypto.CanonicalBytes](
	r io.Reader, fromSig func([]byte) (Sig, error), fromEncSig func([]byte) (EncSig, error),
) (RefundProcedureSignatures[Sig, EncSig], error) {
	var m RefundProcedureSignatures[Sig, EncSig]
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	if m.CancelSig, err = readCanonical(r, fromSig); err != nil {
		return m, err
	}
	m.RefundAdaptorSig, err = readCanonical(r, fromEncSig)
	return m, err
}

// BuyProcedureSignature carries Bob's buy transaction and his adaptor
// signature on it, bound to Alice's adaptor public key.
type BuyProcedureSignature[Px, EncSig crypto.CanonicalBytes] struct {
	SwapId        SwapId
	Buy           Px
	BuyAdaptorSig EncSig
}

// Encode writes a BuyProcedureSignature message.
func (m BuyProcedureSignature[Px, EncSig]) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	n, err := writeCanonical(w, m.Buy)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeCanonical(w, m.BuyAdaptorSig)
	return total + n, err
}

// DecodeBuyProcedureSignature reads a BuyProcedureSignature message.
func DecodeBuyProcedureSignature[Px, EncSig crypto.CanonicalBytes](
	r io.Reader, fromPx func([]byte) (Px, error), fromEncSig func([]byte) (EncSig, error),
) (BuyProcedureSignature[Px, EncSig], error) {
	var m BuyProcedureSignature[Px, EncSig]
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	if m.Buy, err = readCanonical(r, fromPx); err != nil {
		return m, err
	}
	m.BuyAdaptorSig, err = readCanonical(r, fromEncSig)
	return m, err
}

// Abort is an optional courtesy termination message with an optional
// error body string.
type Abort struct {
	SwapId    SwapId
	ErrorBody *string
}

// Encode writes an Abort message.
func (m Abort) Encode(w io.Writer) (int, error) {
	total, err := m.SwapId.Encode(w)
	if err != nil {
		return total, err
	}
	n, err := consensus.WriteOption(w, m.ErrorBody, func(w io.Writer, s string) (int, error) {
		return consensus.WriteBytes(w, []byte(s))
	})
	return total + n, err
}

// DecodeAbort reads an Abort message.
func DecodeAbort(r io.Reader) (Abort, error) {
	var m Abort
	var err error
	if m.SwapId, err = DecodeSwapId(r); err != nil {
		return m, err
	}
	m.ErrorBody, err = consensus.ReadOption(r, func(r io.Reader) (string, error) {
		b, err := consensus.ReadBytes(r)
		return string(b), err
	})
	return m, err
}

// verifyTaggedVec implements the commit/reveal vector law: sizes must
// match exactly, and each tag must equal the committed tag before
// validating the element.
func verifyTaggedVec[K comparable, V crypto.CanonicalBytes, C crypto.CanonicalBytes](
	committer crypto.Commit[C], revealed []crypto.TaggedElement[K, V], committed []crypto.TaggedElement[K, C],
) error {
	if len(revealed) != len(committed) {
		return fcerr.New(fcerr.KindCommitmentVectorSizeMismatch, "")
	}
	for i, rv := range revealed {
		cm := committed[i]
		if rv.Tag != cm.Tag {
			return fcerr.New(fcerr.KindCommitmentTagMismatch, "")
		}
		if err := committer.Validate(rv.Value.AsCanonicalBytes(), cm.Value); err != nil {
			return err
		}
	}
	return nil
}

// VerifyAliceWithReveal validates an Alice reveal message against its
// earlier commitment: committer.Validate(bytes_i, c_i) for every field
// and tagged vector, in the committed field order. It is a free
// function rather than a method because Go methods cannot introduce
// type parameters beyond their receiver's, and the revealed message's
// Pk/Qk/Rk/Sk/Addr types are independent of the commitment type C.
func VerifyAliceWithReveal[C, Pk, Qk, Rk, Sk, Addr crypto.CanonicalBytes](
	commit CommitAliceParameters[C],
	committer crypto.Commit[C],
	reveal RevealAliceParameters[Pk, Qk, Rk, Sk, Addr],
) error {
	checks := []struct {
		value      crypto.CanonicalBytes
		commitment C
	}{
		{reveal.Buy, commit.Buy},
		{reveal.Cancel, commit.Cancel},
		{reveal.Refund, commit.Refund},
		{reveal.Punish, commit.Punish},
		{reveal.Adaptor, commit.Adaptor},
	}
	for _, c := range checks {
		if err := committer.Validate(c.value.AsCanonicalBytes(), c.commitment); err != nil {
			return err
		}
	}
	if err := verifyTaggedVec(committer, reveal.ExtraArbitratingKeys, commit.ExtraArbitratingKeys); err != nil {
		return err
	}
	if err := verifyTaggedVec(committer, reveal.ArbitratingSharedKeys, commit.ArbitratingSharedKeys); err != nil {
		return err
	}
	if err := committer.Validate(reveal.Spend.AsCanonicalBytes(), commit.Spend); err != nil {
		return err
	}
	if err := verifyTaggedVec(committer, reveal.ExtraAccordantKeys, commit.ExtraAccordantKeys); err != nil {
		return err
	}
	return verifyTaggedVec(committer, reveal.AccordantSharedKeys, commit.AccordantSharedKeys)
}

// VerifyBobWithReveal validates a Bob reveal message against its
// earlier commitment.
func VerifyBobWithReveal[C, Pk, Qk, Rk, Sk, Addr crypto.CanonicalBytes](
	commit CommitBobParameters[C],
	committer crypto.Commit[C],
	reveal RevealBobParameters[Pk, Qk, Rk, Sk, Addr],
) error {
	checks := []struct {
		value      crypto.CanonicalBytes
		commitment C
	}{
		{reveal.Buy, commit.Buy},
		{reveal.Cancel, commit.Cancel},
		{reveal.Refund, commit.Refund},
		{reveal.Adaptor, commit.Adaptor},
	}
	for _, c := range checks {
		if err := committer.Validate(c.value.AsCanonicalBytes(), c.commitment); err != nil {
			return err
		}
	}
	if err := verifyTaggedVec(committer, reveal.ExtraArbitratingKeys, commit.ExtraArbitratingKeys); err != nil {
		return err
	}
	if err := verifyTaggedVec(committer, reveal.ArbitratingSharedKeys, commit.ArbitratingSharedKeys); err != nil {
		return err
	}
	if err := committer.Validate(reveal.Spend.AsCanonicalBytes(), commit.Spend); err != nil {
		return err
	}
	if err := verifyTaggedVec(committer, reveal.ExtraAccordantKeys, commit.ExtraAccordantKeys); err != nil {
		return err
	}
	return verifyTaggedVec(committer, reveal.AccordantSharedKeys, commit.AccordantSharedKeys)
}
