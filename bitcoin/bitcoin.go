// Package bitcoin provides concrete Arbitrating-side capability types:
// keys, addresses, a relative timelock, and canonical byte encodings for
// the Bitcoin family. Per SPEC_FULL.md's scope clarification, this
// package stops at capability types — it never constructs, signs with
// real signature math, or broadcasts a transaction; those stay a
// caller's concern behind the transaction package's generic role types.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/klingon-exchange/farcaster-go/blockchain"
	"github.com/klingon-exchange/farcaster-go/fcerr"
	"github.com/klingon-exchange/farcaster-go/internal/chain"
)

// ID is this chain's Blockchain.ID() value.
const ID = "btc"

// Chain identifies Bitcoin on a given network, satisfying
// blockchain.Blockchain.
type Chain struct {
	Network blockchain.Network
}

// ID returns "btc".
func (Chain) ID() string { return ID }

// ChainNetwork returns the network this Chain runs on.
func (c Chain) ChainNetwork() blockchain.Network { return c.Network }

var _ blockchain.Blockchain = Chain{}

// chainParams resolves the internal/chain parameter table entry for
// Bitcoin on the given network, the same table internal/wallet's address
// derivation already consults.
func chainParams(network blockchain.Network) (*chain.Params, error) {
	var net chain.Network
	switch network {
	case blockchain.NetworkMainnet:
		net = chain.Mainnet
	case blockchain.NetworkTestnet, blockchain.NetworkLocal:
		net = chain.Testnet
	default:
		return nil, fcerr.New(fcerr.KindMissingNetwork, "bitcoin")
	}
	params, ok := chain.Get("BTC", net)
	if !ok {
		return nil, fcerr.New(fcerr.KindMissingNetwork, "bitcoin")
	}
	return params, nil
}

func toChainCfgParams(p *chain.Params) *chaincfg.Params {
	hdPriv := p.HDPrivateKeyID
	hdPub := p.HDPublicKeyID
	if hdPriv == [4]byte{} {
		hdPriv = [4]byte{0x04, 0x88, 0xad, 0xe4}
	}
	if hdPub == [4]byte{} {
		hdPub = [4]byte{0x04, 0x88, 0xb2, 0x1e}
	}
	return &chaincfg.Params{
		Name:                    p.Name,
		PubKeyHashAddrID:        p.PubKeyHashAddrID,
		ScriptHashAddrID:        p.ScriptHashAddrID,
		WitnessPubKeyHashAddrID: p.WitnessPubKeyHashAddrID,
		WitnessScriptHashAddrID: p.WitnessScriptHashAddrID,
		Bech32HRPSegwit:         p.Bech32HRP,
		HDPrivateKeyID:          hdPriv,
		HDPublicKeyID:           hdPub,
	}
}

// PublicKey wraps a secp256k1 public key.
type PublicKey struct {
	key *btcec.PublicKey
}

// AsCanonicalBytes returns the compressed SEC1 encoding.
func (k PublicKey) AsCanonicalBytes() []byte {
	if k.key == nil {
		return nil
	}
	return k.key.SerializeCompressed()
}

// PublicKeyFromCanonicalBytes parses a compressed secp256k1 public key.
func PublicKeyFromCanonicalBytes(b []byte) (PublicKey, error) {
	k, err := btcec.ParsePubKey(b)
	if err != nil {
		return PublicKey{}, fcerr.WrapKind(fcerr.KindParseFailed, "bitcoin_public_key", err)
	}
	return PublicKey{key: k}, nil
}

// PrivateKey wraps a secp256k1 private key. It never leaves this package
// except through Sign, which this module does not implement — a caller's
// signing collaborator owns key material lifecycle.
type PrivateKey struct {
	key *btcec.PrivateKey
}

// NewPrivateKey generates a fresh ephemeral key, grounded on
// internal/swap/htlc.go's own NewHTLCSession key generation.
func NewPrivateKey() (PrivateKey, error) {
	k, err := btcec.NewPrivateKey()
	if err != nil {
		return PrivateKey{}, fcerr.WrapKind(fcerr.KindOther, "bitcoin_private_key", err)
	}
	return PrivateKey{key: k}, nil
}

// PublicKey returns the corresponding public key.
func (k PrivateKey) PublicKey() PublicKey {
	if k.key == nil {
		return PublicKey{}
	}
	return PublicKey{key: k.key.PubKey()}
}

// Address wraps a parsed Bitcoin-family address.
type Address struct {
	addr btcutil.Address
}

// AsCanonicalBytes returns the address's scriptless payload (pubkey hash,
// witness program, etc).
func (a Address) AsCanonicalBytes() []byte {
	if a.addr == nil {
		return nil
	}
	return a.addr.ScriptAddress()
}

// String returns the network-encoded address string.
func (a Address) String() string {
	if a.addr == nil {
		return ""
	}
	return a.addr.EncodeAddress()
}

var _ blockchain.Address = Address{}

// DeriveAddress derives a native SegWit (P2WPKH) address from a
// compressed public key, matching transaction.NewFunding's
// deriveAddress(pubkey, network) capability signature and
// internal/wallet/address.go's deriveP2WPKH.
func DeriveAddress(pubkey []byte, network blockchain.Network) (Address, error) {
	params, err := chainParams(network)
	if err != nil {
		return Address{}, err
	}
	pub, err := btcec.ParsePubKey(pubkey)
	if err != nil {
		return Address{}, fcerr.WrapKind(fcerr.KindParseFailed, "bitcoin_address_pubkey", err)
	}
	hash := btcutil.Hash160(pub.SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(hash, toChainCfgParams(params))
	if err != nil {
		return Address{}, fcerr.WrapKind(fcerr.KindParseFailed, "bitcoin_address", err)
	}
	return Address{addr: addr}, nil
}

// Timelock is a CSV-style relative block count.
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
		return Timelock{}, fcerr.New(fcerr.KindParseFailed, "bitcoin_timelock")
	}
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return Timelock{blocks: v}, nil
}

var _ blockchain.Timelock = Timelock{}

// TxId identifies a Bitcoin transaction by its double-SHA256 txid.
type TxId struct {
	hash chainhash.Hash
}

// TxIdFromCanonicalBytes parses a 32-byte txid.
func TxIdFromCanonicalBytes(b []byte) (TxId, error) {
	h, err := chainhash.NewHash(b)
	if err != nil {
		return TxId{}, fcerr.WrapKind(fcerr.KindParseFailed, "bitcoin_txid", err)
	}
	return TxId{hash: *h}, nil
}

// AsCanonicalBytes returns the 32 raw hash bytes.
func (t TxId) AsCanonicalBytes() []byte {
	h := t.hash
	return h[:]
}

// String returns the conventional reversed-hex txid string.
func (t TxId) String() string { return t.hash.String() }

// Signature and AdaptorSignature are opaque capability wrappers: this
// package defines their canonical byte shape only, never the signing
// math that produces or verifies them (out of scope per SPEC_FULL.md §1).
type Signature []byte

// AsCanonicalBytes returns the raw signature bytes.
func (s Signature) AsCanonicalBytes() []byte { return s }

// SignatureFromCanonicalBytes wraps raw bytes as a Signature.
func SignatureFromCanonicalBytes(b []byte) (Signature, error) {
	return Signature(append([]byte(nil), b...)), nil
}

// AdaptorSignature is the pre-signature half of an adaptor signature
// scheme; this package only carries its bytes, never completes or
// extracts it.
type AdaptorSignature []byte

// AsCanonicalBytes returns the raw adaptor-signature bytes.
func (s AdaptorSignature) AsCanonicalBytes() []byte { return s }

// AdaptorSignatureFromCanonicalBytes wraps raw bytes as an
// AdaptorSignature.
func AdaptorSignatureFromCanonicalBytes(b []byte) (AdaptorSignature, error) {
	return AdaptorSignature(append([]byte(nil), b...)), nil
}

// ParseAddressString parses a network-encoded address string back into
// an Address, validating it belongs to the given network.
func ParseAddressString(s string, network blockchain.Network) (Address, error) {
	params, err := chainParams(network)
	if err != nil {
		return Address{}, err
	}
	addr, err := btcutil.DecodeAddress(s, toChainCfgParams(params))
	if err != nil {
		return Address{}, fcerr.WrapKind(fcerr.KindParseFailed, fmt.Sprintf("bitcoin_address:%s", s), err)
	}
	return Address{addr: addr}, nil
}
