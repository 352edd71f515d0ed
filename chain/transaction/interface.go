package transaction

import (
	"math/big"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
)

// CallerVerifier authenticates a transaction and returns the account which sent it
type CallerVerifier interface {
	VerifyCaller(tx *types.Transaction) (common.Address, error)
}

// Currency moves currency between accounts. A failed Transfer must not change any balance
type Currency interface {
	Transfer(from, to common.Address, amount *big.Int) error
}

// EventEmitter receives the events of successful ledger operations
type EventEmitter interface {
	Emit(event *types.Event)
}

// Reverter is implemented by collaborators which keep their own undo log. The processor snapshots
// them together with the ledger so a failed transaction leaves no trace in them either.
type Reverter interface {
	Snapshot() int
	RevertToSnapshot(revid int)
}
