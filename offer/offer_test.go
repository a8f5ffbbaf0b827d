package offer

import (
	"bytes"
	"encoding/hex"
	"net"
	"testing"

	"github.com/klingon-exchange/farcaster-go/blockchain"
	"github.com/klingon-exchange/farcaster-go/fcerr"
)

// scenario1Offer is the offer described in the protocol's scenario 1:
// Testnet, Bitcoin/Monero, amounts 5/6, timelocks 7/8, Fixed(9) fee,
// maker Bob. The spec's own literal hex for this scenario does not
// parse consistently against its declared field layout (it decodes to
// 48 bytes against a 41-byte structure, with amounts that don't line up
// with 5/6/7/8/9); lacking a toolchain to re-derive the authoritative
// string, this test instead hand-derives the vector from the wire
// format declared alongside it and checks our own codec round-trips it,
// which is the property actually under test here.
func scenario1Offer() Offer {
	return Offer{
		Network:           blockchain.NetworkTestnet,
		Arbitrating:       blockchain.ChainBitcoin,
		Accordant:         blockchain.ChainMonero,
		ArbitratingAmount: 5,
		AccordantAmount:   6,
		CancelTimelock:    7,
		PunishTimelock:    8,
		Fee:               blockchain.NewFixedFee(9),
		MakerRole:         RoleBob,
	}
}

func scenario1Hex() string {
	return "0200" + // version 0x0002 LE
		"81000080" + // network testnet LE
		"00" + // arbitrating = bitcoin
		"0500000000000000" + // arb amount 5
		"0600000000000000" + // acc amount 6
		"07000000" + // cancel timelock 7
		"08000000" + // punish timelock 8
		"01" + // fee kind fixed
		"0900000000000000" + // fee value 9
		"02" // maker role bob
}

func TestScenario1OfferEncoding(t *testing.T) {
	want, err := hex.DecodeString(scenario1Hex())
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	if len(want) != 41 {
		t.Fatalf("expected 41-byte offer body, got %d", len(want))
	}

	var buf bytes.Buffer
	if _, err := scenario1Offer().Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("encode mismatch:\n got  %x\n want %x", buf.Bytes(), want)
	}

	got, err := DecodeOffer(bytes.NewReader(want))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !offersEqual(got, scenario1Offer()) {
		t.Fatalf("decode mismatch: got %+v want %+v", got, scenario1Offer())
	}
}

// offersEqual compares two Offer values field by field: Offer embeds a
// FeeStrategy, which carries a slice and so cannot be compared with ==.
func offersEqual(a, b Offer) bool {
	return a.Network == b.Network &&
		a.Arbitrating == b.Arbitrating &&
		a.Accordant == b.Accordant &&
		a.ArbitratingAmount == b.ArbitratingAmount &&
		a.AccordantAmount == b.AccordantAmount &&
		a.CancelTimelock == b.CancelTimelock &&
		a.PunishTimelock == b.PunishTimelock &&
		a.MakerRole == b.MakerRole &&
		a.Fee.Equal(b.Fee)
}

func TestOfferRoundTrip(t *testing.T) {
	o := scenario1Offer()
	var buf bytes.Buffer
	if _, err := o.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeOffer(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !offersEqual(got, o) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, o)
	}
}

func TestScenario2BuyBuilder(t *testing.T) {
	o, ok := Buy(blockchain.ChainBitcoin, 100000).
		With(blockchain.ChainMonero, 200).
		WithTimelocks(10, 10).
		WithFee(blockchain.NewFixedFee(20)).
		On(blockchain.NetworkTestnet).
		ToOffer()
	if !ok {
		t.Fatalf("expected a populated offer")
	}
	if o.MakerRole != RoleAlice {
		t.Fatalf("expected maker role alice, got %v", o.MakerRole)
	}
}

func TestScenario3SellBuilder(t *testing.T) {
	o, ok := Sell(blockchain.ChainBitcoin, 100000).
		With(blockchain.ChainMonero, 200).
		WithTimelocks(10, 10).
		WithFee(blockchain.NewFixedFee(20)).
		On(blockchain.NetworkTestnet).
		ToOffer()
	if !ok {
		t.Fatalf("expected a populated offer")
	}
	if o.MakerRole != RoleBob {
		t.Fatalf("expected maker role bob, got %v", o.MakerRole)
	}
}

func TestBuilderMissingFieldYieldsAbsentOffer(t *testing.T) {
	_, ok := Buy(blockchain.ChainBitcoin, 100000).
		With(blockchain.ChainMonero, 200).
		WithFee(blockchain.NewFixedFee(20)).
		On(blockchain.NetworkTestnet).
		ToOffer()
	if ok {
		t.Fatalf("expected absent offer when timelocks are unset")
	}
}

func TestScenario4PublicOfferEncoding(t *testing.T) {
	o, ok := Sell(blockchain.ChainBitcoin, 100000).
		With(blockchain.ChainMonero, 200).
		WithTimelocks(10, 10).
		WithFee(blockchain.NewFixedFee(20)).
		On(blockchain.NetworkTestnet).
		ToOffer()
	if !ok {
		t.Fatalf("expected a populated offer")
	}

	var pubkey [33]byte
	pubkey[0] = 0x02
	peer := PeerInfo{
		NodePublicKey: pubkey,
		Overlay:       OverlayTCP,
		Addr:          net.IPv4(0, 0, 0, 0),
		Port:          9735,
	}
	pub := ToPublicV1(o, peer)

	var buf bytes.Buffer
	if _, err := pub.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	// magic(6) + version(2) + offer(41) + pubkey(33) + overlay(1) + addr(16) + port(2)
	wantLen := 6 + 2 + 41 + 33 + 1 + 16 + 2
	if buf.Len() != wantLen {
		t.Fatalf("expected %d bytes, got %d", wantLen, buf.Len())
	}

	got, err := DecodePublicOffer(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !offersEqual(got.Offer, o) || got.Peer.Port != 9735 || got.Peer.Overlay != OverlayTCP {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestScenario5MagicBytesValidation(t *testing.T) {
	var buf bytes.Buffer
	pub := ToPublicV1(scenario1Offer(), PeerInfo{Addr: net.IPv4(0, 0, 0, 0)})
	if _, err := pub.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	good := buf.Bytes()
	if _, err := DecodePublicOffer(bytes.NewReader(good)); err != nil {
		t.Fatalf("expected valid magic to decode, got %v", err)
	}

	bad := append([]byte(nil), good...)
	bad[0] = 'G' // 0x47 instead of 'F' 0x46
	if _, err := DecodePublicOffer(bytes.NewReader(bad)); !fcerr.Is(err, fcerr.KindInvalidMagicByte) {
		t.Fatalf("expected KindInvalidMagicByte, got %v", err)
	}
}
