// Package script defines the two lock templates the transaction role
// graph verifies against: DataLock, the cooperative spend path shared by
// Lock/Buy/Cancel, and DataPunishableLock, the unilateral-after-timeout
// path shared by Cancel/Refund/Punish. These are plain data descriptions
// of what a script must enforce, not script bytes themselves — producing
// the actual script/witness program is a concrete chain package's job
// (bitcoin, ...).
package script

import "github.com/klingon-exchange/farcaster-go/blockchain"

// SuccessKeys is the cooperative two-party spend path: both Alice's and
// Bob's public keys must sign.
type SuccessKeys struct {
	Alice blockchain.PublicKey
	Bob   blockchain.PublicKey
}

// DataLock describes the Lock transaction's consumable output: a
// cancel_timelock after which the cancel path becomes available, and the
// cooperative success_keys.
type DataLock struct {
	CancelTimelock blockchain.Timelock
	SuccessKeys    SuccessKeys
}

// DataPunishableLock describes the Cancel transaction's consumable
// output: a punish_timelock after which the unilateral failure path
// (Punish) becomes available, the cooperative success_keys (Refund path),
// and the failure_key usable once the timelock matures.
type DataPunishableLock struct {
	PunishTimelock blockchain.Timelock
	SuccessKeys    SuccessKeys
	FailureKey     blockchain.PublicKey
}
