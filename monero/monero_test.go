package monero

import (
	"testing"

	"github.com/klingon-exchange/farcaster-go/blockchain"
)

func testSeed(tag byte) []byte {
	seed := make([]byte, 64)
	seed[0] = tag
	return seed
}

func TestPublicKeyRoundTrip(t *testing.T) {
	priv, err := NewPrivateKey(testSeed(1))
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pub := priv.PublicKey()
	got, err := PublicKeyFromCanonicalBytes(pub.AsCanonicalBytes())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if string(got.AsCanonicalBytes()) != string(pub.AsCanonicalBytes()) {
		t.Fatalf("round trip mismatch")
	}
}

func TestAddressRoundTrip(t *testing.T) {
	priv, err := NewPrivateKey(testSeed(2))
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pub := priv.PublicKey()
	addr, err := DeriveAddress(pub.AsCanonicalBytes(), blockchain.NetworkTestnet)
	if err != nil {
		t.Fatalf("derive address: %v", err)
	}
	got, err := AddressFromCanonicalBytes(addr.AsCanonicalBytes())
	if err != nil {
		t.Fatalf("parse address: %v", err)
	}
	if got.String() != addr.String() {
		t.Fatalf("round trip mismatch: got %s want %s", got.String(), addr.String())
	}
}

func TestCommitterValidatesDigest(t *testing.T) {
	c := Committer{}
	commitment, err := c.Commit([]byte("spend-key"))
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := c.Validate([]byte("spend-key"), commitment); err != nil {
		t.Fatalf("expected valid commitment, got %v", err)
	}
	if err := c.Validate([]byte("wrong-key"), commitment); err == nil {
		t.Fatalf("expected invalid commitment to fail")
	}
}

func TestTimelockRoundTrip(t *testing.T) {
	tl := NewTimelock(720)
	got, err := TimelockFromCanonicalBytes(tl.AsCanonicalBytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Blocks() != 720 {
		t.Fatalf("expected 720 blocks, got %d", got.Blocks())
	}
}

func TestNewPrivateKeyFromMaterial(t *testing.T) {
	priv, err := NewPrivateKeyFromMaterial([]byte("arbitrary length key material"))
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if priv.PublicKey().AsCanonicalBytes() == nil {
		t.Fatalf("expected a derived public key")
	}
}
