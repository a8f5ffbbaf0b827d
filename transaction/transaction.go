// Package transaction implements the six-role transaction graph (Funding,
// Lock, Buy, Cancel, Refund, Punish) from the protocol specification: the
// contracts each role must satisfy (linkability, chainability, signing,
// finalization, extraction) and the capability predicates composing them.
//
// Each capability is its own small interface, as
// original_source/core/src/transaction.rs defines one trait per
// capability; the role structs compose them. Where the Rust source
// blanket-implements Chainable for every Transaction<T,O> via a generic
// impl, Go has no retroactive trait implementation, so IsBuildOnTopOf is
// a free function taking the child's based-on output and the parent
// Linkable instead (see
// SPEC_FULL.md §4.C and the corresponding Open Question decision in
// DESIGN.md).
package transaction

import (
	"github.com/klingon-exchange/farcaster-go/blockchain"
	"github.com/klingon-exchange/farcaster-go/consensus"
	"github.com/klingon-exchange/farcaster-go/crypto"
	"github.com/klingon-exchange/farcaster-go/fcerr"
	"github.com/klingon-exchange/farcaster-go/script"

	"io"
)

// Role is the u16 wire tag identifying a transaction's position in the
// graph.
type Role uint16

const (
	RoleFunding Role = 0x01
	RoleLock    Role = 0x02
	RoleBuy     Role = 0x03
	RoleCancel  Role = 0x04
	RoleRefund  Role = 0x05
	RolePunish  Role = 0x06
)

// Encode writes the role tag.
func (r Role) Encode(w io.Writer) (int, error) {
	return consensus.WriteU16(w, uint16(r))
}

// DecodeRole reads a Role tag.
func DecodeRole(r io.Reader) (Role, error) {
	v, err := consensus.ReadU16(r)
	if err != nil {
		return 0, err
	}
	switch Role(v) {
	case RoleFunding, RoleLock, RoleBuy, RoleCancel, RoleRefund, RolePunish:
		return Role(v), nil
	default:
		return 0, fcerr.New(fcerr.KindUnknownType, "tx_role")
	}
}

// Witness is one cooperator's signature over a transaction's witness
// message, keyed by their public key's canonical bytes.
type Witness struct {
	PubKey []byte
	Sig    []byte
}

// Signable is generated by a transaction whose default (cooperative)
// spend path can be signed directly.
type Signable interface {
	GenerateWitnessMessage() ([]byte, error)
}

// Forkable is generated by a transaction whose consumable output has two
// paths; GenerateFailureWitnessMessage produces the message for the
// second (failure) path.
type Forkable interface {
	GenerateFailureWitnessMessage() ([]byte, error)
}

// Linkable transactions can describe the output a child transaction
// consumes. O is the consumable-output descriptor type (e.g. a
// chain-specific outpoint reference) and must be comparable so
// IsBuildOnTopOf can test equality directly, mirroring the Rust source's
// Eq bound on O.
type Linkable[O comparable] interface {
	GetConsumableOutput() (O, error)
}

// IsBuildOnTopOf implements the chainability law: child.based_on() must
// equal parent.get_consumable_output().
func IsBuildOnTopOf[O comparable](basedOn O, parent Linkable[O]) error {
	out, err := parent.GetConsumableOutput()
	if err != nil {
		return err
	}
	if basedOn != out {
		return fcerr.New(fcerr.KindInvalidTransactionChain, "")
	}
	return nil
}

// base holds the state shared by every non-Funding role: the
// exchangeable partial transaction, the accumulated witnesses, and the
// finalized flag. It is embedded, not exported, by each role struct.
type base[P crypto.CanonicalBytes] struct {
	partial    P
	witnesses  []Witness
	finalized  bool
	outputAmt  uint64
}

// Partial returns the partial (pre-signature) transaction value.
func (b *base[P]) Partial() P { return b.partial }

// AddWitness stores one cooperator's signature. finalize() later checks
// that at least one witness is present.
func (b *base[P]) AddWitness(pubkey, sig []byte) error {
	if len(pubkey) == 0 {
		return fcerr.New(fcerr.KindMissingPublicKey, "")
	}
	if len(sig) == 0 {
		return fcerr.New(fcerr.KindMissingSignature, "")
	}
	b.witnesses = append(b.witnesses, Witness{PubKey: pubkey, Sig: sig})
	return nil
}

// Finalize marks the transaction finalized once at least one witness has
// been added. It does not check which or how many signatures the spend
// path needs.
func (b *base[P]) Finalize() error {
	if len(b.witnesses) == 0 {
		return fcerr.New(fcerr.KindMissingWitness, "")
	}
	b.finalized = true
	return nil
}

// Finalized reports whether Finalize has succeeded.
func (b *base[P]) Finalized() bool { return b.finalized }

// OutputAmount returns the output amount carried by the transaction.
func (b *base[P]) OutputAmount() uint64 { return b.outputAmt }

func signableMessage(v any) ([]byte, error) {
	s, ok := v.(Signable)
	if !ok {
		return nil, fcerr.New(fcerr.KindMissingSignature, "partial transaction is not signable")
	}
	return s.GenerateWitnessMessage()
}

func forkableMessage(v any) ([]byte, error) {
	f, ok := v.(Forkable)
	if !ok {
		return nil, fcerr.New(fcerr.KindMissingSignature, "partial transaction is not forkable")
	}
	return f.GenerateFailureWitnessMessage()
}

// Funding is externally created: the funding transaction is an address
// the system hands to an external wallet, observed on-chain later via
// Update (or built directly from that transaction by RawFunding). It is
// explicitly non-broadcastable (no Extract method).
type Funding[A blockchain.Address, Tx crypto.CanonicalBytes, O comparable] struct {
	address   A
	network   blockchain.Network
	tx        *Tx
	toOutput  func(Tx) (O, error)
}

// NewFunding initializes a Funding value for the given network, deriving
// its address from pubkey via deriveAddress.
func NewFunding[A blockchain.Address, Tx crypto.CanonicalBytes, O comparable](
	pubkey []byte,
	network blockchain.Network,
	deriveAddress func(pubkey []byte, network blockchain.Network) (A, error),
	toOutput func(Tx) (O, error),
) (*Funding[A, Tx, O], error) {
	if len(pubkey) == 0 {
		return nil, fcerr.New(fcerr.KindMissingPublicKey, "")
	}
	addr, err := deriveAddress(pubkey, network)
	if err != nil {
		return nil, err
	}
	return &Funding[A, Tx, O]{address: addr, network: network, toOutput: toOutput}, nil
}

// RawFunding builds a Funding value directly from an externally observed
// transaction, skipping address derivation (used when recovering state
// from an already-funded swap).
func RawFunding[A blockchain.Address, Tx crypto.CanonicalBytes, O comparable](
	tx Tx,
	toOutput func(Tx) (O, error),
) *Funding[A, Tx, O] {
	return &Funding[A, Tx, O]{tx: &tx, toOutput: toOutput}
}

// GetAddress returns the funding address.
func (f *Funding[A, Tx, O]) GetAddress() (A, error) {
	var zero A
	if any(f.address) == any(zero) && f.tx == nil {
		return zero, fcerr.New(fcerr.KindMissingOnchainTransaction, "")
	}
	return f.address, nil
}

// Update attaches the externally observed funding transaction.
func (f *Funding[A, Tx, O]) Update(tx Tx) error {
	f.tx = &tx
	return nil
}

// GetConsumableOutput returns the descriptor a Lock transaction can build
// on top of.
func (f *Funding[A, Tx, O]) GetConsumableOutput() (O, error) {
	var zero O
	if f.tx == nil {
		return zero, fcerr.New(fcerr.KindMissingOnchainTransaction, "")
	}
	return f.toOutput(*f.tx)
}

// GetID returns this role's wire tag.
func (f *Funding[A, Tx, O]) GetID() Role { return RoleFunding }

// Lock is the `lock (b)` transaction: consumes Funding, creates the
// DataLock consumable output used by Buy and Cancel.
type Lock[P crypto.CanonicalBytes, O comparable] struct {
	base[P]
	basedOn      O
	consumable   O
	lockData     script.DataLock
	targetAmount uint64
}

// NewLock builds a Lock transaction. targetAmount is validated against
// outputAmount immediately: initialization fails with
// KindInvalidTargetAmount unless the two are equal.
func NewLock[P crypto.CanonicalBytes, O comparable](
	basedOn O,
	consumable O,
	lock script.DataLock,
	partial P,
	outputAmount, targetAmount uint64,
) (*Lock[P, O], error) {
	l := &Lock[P, O]{basedOn: basedOn, consumable: consumable, lockData: lock, targetAmount: targetAmount}
	l.partial = partial
	l.outputAmt = outputAmount
	if err := l.VerifyTargetAmount(targetAmount); err != nil {
		return nil, err
	}
	return l, nil
}

// BasedOn returns the Funding output this Lock consumes.
func (l *Lock[P, O]) BasedOn() O { return l.basedOn }

// GetConsumableOutput returns the output Buy/Cancel build on top of.
func (l *Lock[P, O]) GetConsumableOutput() (O, error) { return l.consumable, nil }

// VerifyTemplate checks the transaction implements the declared DataLock.
func (l *Lock[P, O]) VerifyTemplate(lock script.DataLock) error {
	if l.lockData != lock {
		return fcerr.New(fcerr.KindWrongTemplate, "")
	}
	return nil
}

// VerifyTargetAmount checks the output amount equals amount exactly.
func (l *Lock[P, O]) VerifyTargetAmount(amount uint64) error {
	if l.outputAmt != amount {
		return fcerr.New(fcerr.KindInvalidTargetAmount, "")
	}
	return nil
}

// GenerateWitnessMessage delegates to the partial transaction's own
// Signable implementation.
func (l *Lock[P, O]) GenerateWitnessMessage() ([]byte, error) { return signableMessage(l.partial) }

// GetID returns this role's wire tag.
func (l *Lock[P, O]) GetID() Role { return RoleLock }

// Buy is the `buy (c)` transaction: consumes Lock's success path,
// delivers funds to the buyer while revealing the secret the seller
// needs to claim the accordant-side funds.
type Buy[P crypto.CanonicalBytes, O comparable] struct {
	base[P]
	basedOn           O
	consumable        O
	lockData          script.DataLock
	destinationTarget blockchain.Address
}

// NewBuy builds a Buy transaction.
func NewBuy[P crypto.CanonicalBytes, O comparable](
	basedOn O,
	consumable O,
	lock script.DataLock,
	destination blockchain.Address,
	partial P,
	outputAmount uint64,
) *Buy[P, O] {
	b := &Buy[P, O]{basedOn: basedOn, consumable: consumable, lockData: lock, destinationTarget: destination}
	b.partial = partial
	b.outputAmt = outputAmount
	return b
}

// BasedOn returns the Lock output this Buy consumes.
func (b *Buy[P, O]) BasedOn() O { return b.basedOn }

// GetConsumableOutput returns Buy's own output (terminal in the graph,
// but still describable for completeness / potential child chaining).
func (b *Buy[P, O]) GetConsumableOutput() (O, error) { return b.consumable, nil }

// VerifyTemplate checks the DataLock and destination address match.
func (b *Buy[P, O]) VerifyTemplate(lock script.DataLock, destination blockchain.Address) error {
	if b.lockData != lock {
		return fcerr.New(fcerr.KindWrongTemplate, "")
	}
	if destination.String() != b.destinationTarget.String() {
		return fcerr.New(fcerr.KindWrongTemplate, "")
	}
	return nil
}

// GenerateWitnessMessage delegates to the partial transaction.
func (b *Buy[P, O]) GenerateWitnessMessage() ([]byte, error) { return signableMessage(b.partial) }

// GetID returns this role's wire tag.
func (b *Buy[P, O]) GetID() Role { return RoleBuy }

// Cancel is the `cancel (d)` transaction: consumes Lock's failure path
// after cancel_timelock, creates the DataPunishableLock consumable
// output used by Refund and Punish.
type Cancel[P crypto.CanonicalBytes, O comparable] struct {
	base[P]
	basedOn      O
	consumable   O
	lockData     script.DataLock
	punishLock   script.DataPunishableLock
}

// NewCancel builds a Cancel transaction.
func NewCancel[P crypto.CanonicalBytes, O comparable](
	basedOn O,
	consumable O,
	lock script.DataLock,
	punishLock script.DataPunishableLock,
	partial P,
	outputAmount uint64,
) *Cancel[P, O] {
	c := &Cancel[P, O]{basedOn: basedOn, consumable: consumable, lockData: lock, punishLock: punishLock}
	c.partial = partial
	c.outputAmt = outputAmount
	return c
}

// BasedOn returns the Lock output this Cancel consumes.
func (c *Cancel[P, O]) BasedOn() O { return c.basedOn }

// GetConsumableOutput returns the output Refund/Punish build on top of.
func (c *Cancel[P, O]) GetConsumableOutput() (O, error) { return c.consumable, nil }

// VerifyTemplate checks the DataLock and DataPunishableLock match.
func (c *Cancel[P, O]) VerifyTemplate(lock script.DataLock, punishLock script.DataPunishableLock) error {
	if c.lockData != lock || c.punishLock != punishLock {
		return fcerr.New(fcerr.KindWrongTemplate, "")
	}
	return nil
}

// GenerateFailureWitnessMessage delegates to the partial transaction.
func (c *Cancel[P, O]) GenerateFailureWitnessMessage() ([]byte, error) { return forkableMessage(c.partial) }

// GetID returns this role's wire tag.
func (c *Cancel[P, O]) GetID() Role { return RoleCancel }

// Refund is the `refund (e)` transaction: consumes Cancel's cooperative
// path, returns the funds to their original owner.
type Refund[P crypto.CanonicalBytes, O comparable] struct {
	base[P]
	basedOn       O
	consumable    O
	punishLock    script.DataPunishableLock
	refundTarget  blockchain.Address
}

// NewRefund builds a Refund transaction.
func NewRefund[P crypto.CanonicalBytes, O comparable](
	basedOn O,
	consumable O,
	punishLock script.DataPunishableLock,
	refundTarget blockchain.Address,
	partial P,
	outputAmount uint64,
) *Refund[P, O] {
	r := &Refund[P, O]{basedOn: basedOn, consumable: consumable, punishLock: punishLock, refundTarget: refundTarget}
	r.partial = partial
	r.outputAmt = outputAmount
	return r
}

// BasedOn returns the Cancel output this Refund consumes.
func (r *Refund[P, O]) BasedOn() O { return r.basedOn }

// GetConsumableOutput returns Refund's own output.
func (r *Refund[P, O]) GetConsumableOutput() (O, error) { return r.consumable, nil }

// VerifyTemplate checks the DataPunishableLock and refund address match.
func (r *Refund[P, O]) VerifyTemplate(punishLock script.DataPunishableLock, refundTarget blockchain.Address) error {
	if r.punishLock != punishLock {
		return fcerr.New(fcerr.KindWrongTemplate, "")
	}
	if refundTarget.String() != r.refundTarget.String() {
		return fcerr.New(fcerr.KindWrongTemplate, "")
	}
	return nil
}

// GenerateWitnessMessage delegates to the partial transaction.
func (r *Refund[P, O]) GenerateWitnessMessage() ([]byte, error) { return signableMessage(r.partial) }

// GetID returns this role's wire tag.
func (r *Refund[P, O]) GetID() Role { return RoleRefund }

// Punish is the `punish (f)` transaction: consumes Cancel's unilateral
// path after punish_timelock, sending funds to the non-misbehaving
// counterparty without revealing the secret. It is created unilaterally,
// so — per the specification — it has no VerifyTemplate: no counterparty
// verification path exists for a transaction only its creator ever
// builds, and implementers must not derive one from the others.
type Punish[P crypto.CanonicalBytes, O comparable] struct {
	base[P]
	basedOn     O
	consumable  O
	punishLock  script.DataPunishableLock
}

// NewPunish builds a Punish transaction.
func NewPunish[P crypto.CanonicalBytes, O comparable](
	basedOn O,
	consumable O,
	punishLock script.DataPunishableLock,
	partial P,
	outputAmount uint64,
) *Punish[P, O] {
	p := &Punish[P, O]{basedOn: basedOn, consumable: consumable, punishLock: punishLock}
	p.partial = partial
	p.outputAmt = outputAmount
	return p
}

// BasedOn returns the Cancel output this Punish consumes.
func (p *Punish[P, O]) BasedOn() O { return p.basedOn }

// GetConsumableOutput returns Punish's own output.
func (p *Punish[P, O]) GetConsumableOutput() (O, error) { return p.consumable, nil }

// GenerateFailureWitnessMessage delegates to the partial transaction.
func (p *Punish[P, O]) GenerateFailureWitnessMessage() ([]byte, error) { return forkableMessage(p.partial) }

// GetID returns this role's wire tag.
func (p *Punish[P, O]) GetID() Role { return RolePunish }
