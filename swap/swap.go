// Package swap implements the swap instance state machine: a passive,
// single-threaded router over the protocol messages in package protocol.
// It holds no timers, does no I/O, and performs no scheduling — callers
// drive it message by message, exactly as original_source's own
// Swap/SwapStateMachine types are driven by a daemon loop external to
// the crate itself.
//
// Instance is parameterized only by the commitment type C: the
// remaining message payload types (public keys, addresses, proofs,
// signatures) are handled as crypto.CanonicalBytes throughout, since the
// state machine never inspects their structure, only routes and
// delegates validation to a Commit[C] collaborator. This mirrors the
// teacher's own preference for holding opaque byte-like fields
// (internal/swap/htlc.go's secrets, internal/node's message frames)
// rather than re-deriving type safety the collaborator already owns.
package swap

import (
	"github.com/klingon-exchange/farcaster-go/crypto"
	"github.com/klingon-exchange/farcaster-go/fcerr"
	"github.com/klingon-exchange/farcaster-go/offer"
	"github.com/klingon-exchange/farcaster-go/pkg/logging"
	"github.com/klingon-exchange/farcaster-go/protocol"
)

// Phase is a swap instance's position in the legal message sequence.
// Values only ever increase, except for the terminal Aborted phase
// which can be entered from any non-terminal phase.
type Phase uint8

const (
	PhaseNegotiationDone Phase = iota + 1
	PhaseCommitReceived
	PhaseRevealReceived
	PhaseCoreSetupExchanged
	PhaseRefundSigsExchanged
	PhaseBuySigExchanged // == Completed
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseNegotiationDone:
		return "negotiation_done"
	case PhaseCommitReceived:
		return "commit_received"
	case PhaseRevealReceived:
		return "reveal_received"
	case PhaseCoreSetupExchanged:
		return "core_setup_exchanged"
	case PhaseRefundSigsExchanged:
		return "refund_sigs_exchanged"
	case PhaseBuySigExchanged:
		return "completed"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// params is the commitment-erased Parameters shape Instance stores for
// both the local and remote participant.
type params = protocol.Parameters[crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes]

// Instance is one running swap's state: identity, roles, the local
// cryptographic setup, the remote commitment and (once opened) revealed
// parameters, the exchanged core arbitrating transactions and
// signatures, and the current Phase.
type Instance[C crypto.CanonicalBytes] struct {
	SwapID    protocol.SwapId
	LocalRole offer.MakerRole
	PeerRole  offer.MakerRole
	Phase     Phase

	Committer crypto.Commit[C]

	LocalParams params

	RemoteCommitAlice *protocol.CommitAliceParameters[C]
	RemoteCommitBob   *protocol.CommitBobParameters[C]
	RemoteParams      *params

	CoreSetup  *protocol.CoreArbitratingSetup[crypto.CanonicalBytes, crypto.CanonicalBytes]
	RefundSigs *protocol.RefundProcedureSignatures[crypto.CanonicalBytes, crypto.CanonicalBytes]
	BuySig     *protocol.BuyProcedureSignature[crypto.CanonicalBytes, crypto.CanonicalBytes]

	AbortReason string

	log *logging.Logger
}

// New creates a fresh Instance in PhaseNegotiationDone. logger may be
// nil, in which case transitions and aborts are not logged.
func New[C crypto.CanonicalBytes](
	swapID protocol.SwapId, localRole, peerRole offer.MakerRole, localParams params,
	committer crypto.Commit[C], logger *logging.Logger,
) *Instance[C] {
	inst := &Instance[C]{
		SwapID: swapID, LocalRole: localRole, PeerRole: peerRole,
		Phase: PhaseNegotiationDone, Committer: committer, LocalParams: localParams,
	}
	if logger != nil {
		inst.log = logger.Component("swap")
	}
	return inst
}

func (s *Instance[C]) checkSwapID(id protocol.SwapId) error {
	if id != s.SwapID {
		return fcerr.New(fcerr.KindSwapIDMismatch, "")
	}
	return nil
}

func (s *Instance[C]) checkPhase(want Phase) error {
	if s.Phase != want {
		return fcerr.WrapKind(fcerr.KindUnexpectedMessage, s.Phase.String(), nil)
	}
	return nil
}

func (s *Instance[C]) abort(reason error) error {
	s.Phase = PhaseAborted
	if reason != nil {
		s.AbortReason = reason.Error()
	}
	if s.log != nil {
		s.log.Warn("swap aborted", "swap_id", s.SwapID, "reason", s.AbortReason)
	}
	return reason
}

func (s *Instance[C]) advance(next Phase) {
	s.Phase = next
	if s.log != nil {
		s.log.Debug("swap phase advanced", "swap_id", s.SwapID, "phase", next.String())
	}
}

// ReceiveCommitAlice processes an incoming CommitAliceParameters
// message. Valid only in PhaseNegotiationDone.
func (s *Instance[C]) ReceiveCommitAlice(msg protocol.CommitAliceParameters[C]) error {
	if err := s.checkSwapID(msg.SwapId); err != nil {
		return s.abort(err)
	}
	if err := s.checkPhase(PhaseNegotiationDone); err != nil {
		return s.abort(err)
	}
	s.RemoteCommitAlice = &msg
	s.advance(PhaseCommitReceived)
	return nil
}

// ReceiveCommitBob processes an incoming CommitBobParameters message.
// Valid only in PhaseNegotiationDone.
func (s *Instance[C]) ReceiveCommitBob(msg protocol.CommitBobParameters[C]) error {
	if err := s.checkSwapID(msg.SwapId); err != nil {
		return s.abort(err)
	}
	if err := s.checkPhase(PhaseNegotiationDone); err != nil {
		return s.abort(err)
	}
	s.RemoteCommitBob = &msg
	s.advance(PhaseCommitReceived)
	return nil
}

// ReceiveRevealAlice processes an incoming RevealAliceParameters
// message, validating it against the previously received
// CommitAliceParameters. Valid only in PhaseCommitReceived, and only
// when a CommitAliceParameters was in fact the commitment received
// (the remote party must be Alice).
func (s *Instance[C]) ReceiveRevealAlice(msg protocol.RevealAliceParameters[crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes]) error {
	if err := s.checkSwapID(msg.SwapId); err != nil {
		return s.abort(err)
	}
	if err := s.checkPhase(PhaseCommitReceived); err != nil {
		return s.abort(err)
	}
	if s.RemoteCommitAlice == nil {
		return s.abort(fcerr.WrapKind(fcerr.KindUnexpectedMessage, "reveal_alice_without_commit", nil))
	}
	if err := protocol.VerifyAliceWithReveal(*s.RemoteCommitAlice, s.Committer, msg); err != nil {
		return s.abort(err)
	}
	p := msg.IntoParameters()
	s.RemoteParams = &p
	s.advance(PhaseRevealReceived)
	return nil
}

// ReceiveRevealBob processes an incoming RevealBobParameters message,
// validating it against the previously received CommitBobParameters.
func (s *Instance[C]) ReceiveRevealBob(msg protocol.RevealBobParameters[crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes, crypto.CanonicalBytes]) error {
	if err := s.checkSwapID(msg.SwapId); err != nil {
		return s.abort(err)
	}
	if err := s.checkPhase(PhaseCommitReceived); err != nil {
		return s.abort(err)
	}
	if s.RemoteCommitBob == nil {
		return s.abort(fcerr.WrapKind(fcerr.KindUnexpectedMessage, "reveal_bob_without_commit", nil))
	}
	if err := protocol.VerifyBobWithReveal(*s.RemoteCommitBob, s.Committer, msg); err != nil {
		return s.abort(err)
	}
	p := msg.IntoParameters()
	s.RemoteParams = &p
	s.advance(PhaseRevealReceived)
	return nil
}

// ReceiveCoreArbitratingSetup processes Bob's CoreArbitratingSetup.
// verifyCancelSig is supplied by the caller (a collaborator's signature
// verification capability); the core never checks signatures itself.
func (s *Instance[C]) ReceiveCoreArbitratingSetup(
	msg protocol.CoreArbitratingSetup[crypto.CanonicalBytes, crypto.CanonicalBytes],
	verifyCancelSig func(protocol.CoreArbitratingSetup[crypto.CanonicalBytes, crypto.CanonicalBytes]) error,
) error {
	if err := s.checkSwapID(msg.SwapId); err != nil {
		return s.abort(err)
	}
	if err := s.checkPhase(PhaseRevealReceived); err != nil {
		return s.abort(err)
	}
	if verifyCancelSig != nil {
		if err := verifyCancelSig(msg); err != nil {
			return s.abort(err)
		}
	}
	s.CoreSetup = &msg
	s.advance(PhaseCoreSetupExchanged)
	return nil
}

// ReceiveRefundProcedureSignatures processes Alice's
// RefundProcedureSignatures.
func (s *Instance[C]) ReceiveRefundProcedureSignatures(
	msg protocol.RefundProcedureSignatures[crypto.CanonicalBytes, crypto.CanonicalBytes],
	verify func(protocol.RefundProcedureSignatures[crypto.CanonicalBytes, crypto.CanonicalBytes]) error,
) error {
	if err := s.checkSwapID(msg.SwapId); err != nil {
		return s.abort(err)
	}
	if err := s.checkPhase(PhaseCoreSetupExchanged); err != nil {
		return s.abort(err)
	}
	if verify != nil {
		if err := verify(msg); err != nil {
			return s.abort(err)
		}
	}
	s.RefundSigs = &msg
	s.advance(PhaseRefundSigsExchanged)
	return nil
}

// ReceiveBuyProcedureSignature processes Bob's BuyProcedureSignature and
// completes the swap.
func (s *Instance[C]) ReceiveBuyProcedureSignature(
	msg protocol.BuyProcedureSignature[crypto.CanonicalBytes, crypto.CanonicalBytes],
	verify func(protocol.BuyProcedureSignature[crypto.CanonicalBytes, crypto.CanonicalBytes]) error,
) error {
	if err := s.checkSwapID(msg.SwapId); err != nil {
		return s.abort(err)
	}
	if err := s.checkPhase(PhaseRefundSigsExchanged); err != nil {
		return s.abort(err)
	}
	if verify != nil {
		if err := verify(msg); err != nil {
			return s.abort(err)
		}
	}
	s.BuySig = &msg
	s.advance(PhaseBuySigExchanged)
	return nil
}

// ReceiveAbort processes an Abort message. It is terminal from any
// non-terminal phase.
func (s *Instance[C]) ReceiveAbort(msg protocol.Abort) error {
	if err := s.checkSwapID(msg.SwapId); err != nil {
		return s.abort(err)
	}
	if s.Phase == PhaseAborted || s.Phase == PhaseBuySigExchanged {
		return fcerr.WrapKind(fcerr.KindUnexpectedMessage, s.Phase.String(), nil)
	}
	reason := fcerr.New(fcerr.KindAborted, "")
	if msg.ErrorBody != nil {
		reason.Field = *msg.ErrorBody
	}
	err := s.abort(reason)
	if msg.ErrorBody != nil {
		s.AbortReason = *msg.ErrorBody
	}
	return err
}

// Completed reports whether the swap reached PhaseBuySigExchanged.
func (s *Instance[C]) Completed() bool { return s.Phase == PhaseBuySigExchanged }

// Aborted reports whether the swap reached PhaseAborted.
func (s *Instance[C]) Aborted() bool { return s.Phase == PhaseAborted }
