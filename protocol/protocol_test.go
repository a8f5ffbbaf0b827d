package protocol

import (
	"bytes"
	"testing"

	"github.com/klingon-exchange/farcaster-go/crypto"
	"github.com/klingon-exchange/farcaster-go/fcerr"
)

// fakeKey is a minimal crypto.CanonicalBytes stand-in for a public key
// or signature, used to exercise message encoding without a concrete
// chain backend.
type fakeKey []byte

func (k fakeKey) AsCanonicalBytes() []byte { return k }

func fakeKeyFrom(b []byte) (fakeKey, error) { return fakeKey(append([]byte(nil), b...)), nil }

func swapID(b byte) SwapId {
	var id SwapId
	id[0] = b
	return id
}

func TestCommitAliceParametersRoundTrip(t *testing.T) {
	commitValue := func(tag byte) crypto.Sha256Commitment {
		var c crypto.Sha256Commitment
		c[0] = tag
		return c
	}
	m := CommitAliceParameters[crypto.Sha256Commitment]{
		SwapId:  swapID(1),
		Buy:     commitValue(1),
		Cancel:  commitValue(2),
		Refund:  commitValue(3),
		Punish:  commitValue(4),
		Adaptor: commitValue(5),
		ExtraArbitratingKeys: []crypto.TaggedElement[uint16, crypto.Sha256Commitment]{
			{Tag: 1, Value: commitValue(6)},
		},
		Spend: commitValue(7),
	}
	var buf bytes.Buffer
	if _, err := m.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeCommitAliceParameters(&buf, crypto.Sha256CommitmentFromCanonicalBytes)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SwapId != m.SwapId || got.Buy != m.Buy || got.Punish != m.Punish {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, m)
	}
	if len(got.ExtraArbitratingKeys) != 1 || got.ExtraArbitratingKeys[0].Tag != 1 {
		t.Fatalf("extra arbitrating keys mismatch: %+v", got.ExtraArbitratingKeys)
	}
}

func TestVerifyAliceWithRevealSoundness(t *testing.T) {
	committer := crypto.Sha256Committer{}

	buy, _ := committer.Commit([]byte("buy"))
	cancel, _ := committer.Commit([]byte("cancel"))
	refund, _ := committer.Commit([]byte("refund"))
	punish, _ := committer.Commit([]byte("punish"))
	adaptor, _ := committer.Commit([]byte("adaptor"))
	spend, _ := committer.Commit([]byte("spend"))

	commit := CommitAliceParameters[crypto.Sha256Commitment]{
		SwapId: swapID(1), Buy: buy, Cancel: cancel, Refund: refund, Punish: punish, Adaptor: adaptor, Spend: spend,
	}

	goodReveal := RevealAliceParameters[fakeKey, fakeKey, fakeKey, fakeKey, fakeKey]{
		SwapId: swapID(1),
		Buy:    fakeKey("buy"), Cancel: fakeKey("cancel"), Refund: fakeKey("refund"),
		Punish: fakeKey("punish"), Adaptor: fakeKey("adaptor"), Spend: fakeKey("spend"),
	}
	if err := VerifyAliceWithReveal(commit, committer, goodReveal); err != nil {
		t.Fatalf("expected valid reveal to verify, got %v", err)
	}

	badReveal := goodReveal
	badReveal.Buy = fakeKey("not-buy")
	if err := VerifyAliceWithReveal(commit, committer, badReveal); !fcerr.Is(err, fcerr.KindInvalidCommitment) {
		t.Fatalf("expected KindInvalidCommitment, got %v", err)
	}
}

func TestVerifyTaggedVecSizeAndTagMismatch(t *testing.T) {
	committer := crypto.Sha256Committer{}
	c1, _ := committer.Commit([]byte("a"))
	committed := []crypto.TaggedElement[uint16, crypto.Sha256Commitment]{{Tag: 1, Value: c1}}

	// size mismatch
	err := verifyTaggedVec(committer, []crypto.TaggedElement[uint16, fakeKey]{}, committed)
	if !fcerr.Is(err, fcerr.KindCommitmentVectorSizeMismatch) {
		t.Fatalf("expected KindCommitmentVectorSizeMismatch, got %v", err)
	}

	// tag mismatch
	revealed := []crypto.TaggedElement[uint16, fakeKey]{{Tag: 2, Value: fakeKey("a")}}
	err = verifyTaggedVec(committer, revealed, committed)
	if !fcerr.Is(err, fcerr.KindCommitmentTagMismatch) {
		t.Fatalf("expected KindCommitmentTagMismatch, got %v", err)
	}
}

func TestAbortOptionalBody(t *testing.T) {
	body := "counterparty timed out"
	m := Abort{SwapId: swapID(9), ErrorBody: &body}
	var buf bytes.Buffer
	if _, err := m.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeAbort(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ErrorBody == nil || *got.ErrorBody != body {
		t.Fatalf("expected error body to round trip, got %+v", got)
	}

	m2 := Abort{SwapId: swapID(9)}
	buf.Reset()
	if _, err := m2.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got2, err := DecodeAbort(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got2.ErrorBody != nil {
		t.Fatalf("expected absent error body, got %+v", got2.ErrorBody)
	}
}

func TestCoreArbitratingSetupRoundTrip(t *testing.T) {
	m := CoreArbitratingSetup[fakeKey, fakeKey]{
		SwapId: swapID(2), Lock: fakeKey("lock"), Cancel: fakeKey("cancel"), Refund: fakeKey("refund"),
		CancelSig: fakeKey("cancel-sig"),
	}
	var buf bytes.Buffer
	if _, err := m.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeCoreArbitratingSetup(&buf, fakeKeyFrom, fakeKeyFrom)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SwapId != m.SwapId || string(got.Lock) != string(m.Lock) || string(got.CancelSig) != string(m.CancelSig) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, m)
	}
}
