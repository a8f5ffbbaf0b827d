// Package fcerr defines the unified error taxonomy shared by every package
// in this module, grounded on the error kinds listed in the protocol
// specification (encoding, commit/reveal, transaction, signature, and
// protocol-level failures) plus an opaque wrapper for collaborator errors.
package fcerr

import "fmt"

// Kind identifies a category of error raised anywhere in the swap core.
type Kind string

// Encoding errors (consensus codec, §4.A).
const (
	KindUnknownType      Kind = "unknown_type"
	KindInvalidMagicByte Kind = "invalid_magic_bytes"
	KindUnexpectedEOF    Kind = "unexpected_eof"
	KindTrailingBytes    Kind = "trailing_bytes"
	KindParseFailed      Kind = "parse_failed"
)

// Commit/reveal errors.
const (
	KindInvalidCommitment             Kind = "invalid_commitment"
	KindCommitmentVectorSizeMismatch  Kind = "commitment_vector_size_mismatch"
	KindCommitmentTagMismatch         Kind = "commitment_tag_mismatch"
)

// Transaction errors.
const (
	KindMissingSignature          Kind = "missing_signature"
	KindMissingWitness            Kind = "missing_witness"
	KindMissingNetwork            Kind = "missing_network"
	KindMissingPublicKey          Kind = "missing_public_key"
	KindMissingOnchainTransaction Kind = "missing_onchain_transaction"
	KindInvalidTargetAmount       Kind = "invalid_target_amount"
	KindNotEnoughAssets           Kind = "not_enough_assets"
	KindWrongTemplate             Kind = "wrong_template"
	KindInvalidTransactionChain   Kind = "invalid_transaction_chain"
)

// Signature errors.
const (
	KindInvalidSignature        Kind = "invalid_signature"
	KindInvalidAdaptorSignature Kind = "invalid_adaptor_signature"
)

// Protocol errors.
const (
	KindUnexpectedMessage Kind = "unexpected_message"
	KindSwapIDMismatch    Kind = "swap_id_mismatch"
	KindAborted           Kind = "aborted"
)

// KindOther wraps an error surfaced from a capability implementation that
// does not otherwise fit the taxonomy above.
const KindOther Kind = "other"

// Error is the concrete error type returned by every package in this
// module. Field carries extra context (e.g. the field name for
// KindParseFailed, the phase name for KindUnexpectedMessage); Cause wraps
// an underlying collaborator error, if any.
type Error struct {
	Kind  Kind
	Field string
	Cause error
}

// New creates an Error of the given kind with an optional field label.
func New(kind Kind, field string) *Error {
	return &Error{Kind: kind, Field: field}
}

// Wrap creates a KindOther error carrying an arbitrary collaborator cause.
func Wrap(cause error) *Error {
	return &Error{Kind: KindOther, Cause: cause}
}

// WrapKind wraps cause under a specific kind, keeping the original error
// reachable through errors.Unwrap/errors.Is.
func WrapKind(kind Kind, field string, cause error) *Error {
	return &Error{Kind: kind, Field: field, Cause: cause}
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil && e.Field != "":
		return fmt.Sprintf("%s (%s): %v", e.Kind, e.Field, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	case e.Field != "":
		return fmt.Sprintf("%s (%s)", e.Kind, e.Field)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err is an *Error of the given kind. It is the
// idiomatic replacement for the parameterized Rust error variants
// (e.g. ParseFailed(field)) that Go sentinel errors can't carry directly.
func Is(err error, kind Kind) bool {
	var fe *Error
	if !asError(err, &fe) {
		return false
	}
	return fe.Kind == kind
}

func asError(err error, target **Error) bool {
	for err != nil {
		if fe, ok := err.(*Error); ok {
			*target = fe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
