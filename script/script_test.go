package script

import (
	"testing"

	"github.com/klingon-exchange/farcaster-go/blockchain"
)

type fakeKey string

func (k fakeKey) AsCanonicalBytes() []byte { return []byte(k) }

type fakeTimelock uint32

func (t fakeTimelock) AsCanonicalBytes() []byte { return []byte{byte(t)} }
func (t fakeTimelock) Blocks() uint32           { return uint32(t) }

func TestDataLockHoldsSuccessKeysAndTimelock(t *testing.T) {
	lock := DataLock{
		CancelTimelock: fakeTimelock(10),
		SuccessKeys: SuccessKeys{
			Alice: fakeKey("alice"),
			Bob:   fakeKey("bob"),
		},
	}
	if lock.CancelTimelock.Blocks() != 10 {
		t.Fatalf("expected cancel timelock of 10 blocks, got %d", lock.CancelTimelock.Blocks())
	}
	if string(lock.SuccessKeys.Alice.AsCanonicalBytes()) != "alice" {
		t.Fatalf("expected alice key")
	}
	if string(lock.SuccessKeys.Bob.AsCanonicalBytes()) != "bob" {
		t.Fatalf("expected bob key")
	}
}

func TestDataPunishableLockHoldsFailureKeyAndTimelock(t *testing.T) {
	lock := DataPunishableLock{
		PunishTimelock: fakeTimelock(20),
		SuccessKeys: SuccessKeys{
			Alice: fakeKey("alice"),
			Bob:   fakeKey("bob"),
		},
		FailureKey: fakeKey("bob-failure"),
	}
	if lock.PunishTimelock.Blocks() != 20 {
		t.Fatalf("expected punish timelock of 20 blocks, got %d", lock.PunishTimelock.Blocks())
	}
	if string(lock.FailureKey.AsCanonicalBytes()) != "bob-failure" {
		t.Fatalf("expected bob-failure key")
	}
}

var (
	_ blockchain.Timelock = fakeTimelock(0)
)
