package bridge

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenLedger is the token ledger an instance burns from and mints to.
// Mint and Burn fail with ErrMissingCapability when operator lacks the capability
// and Burn fails with ErrInsufficientBalance when account cannot cover amount.
type TokenLedger interface {
	Mint(ctx context.Context, operator, account common.Address, amount *big.Int) error
	Burn(ctx context.Context, operator, account common.Address, amount *big.Int) error
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
	HasCapability(ctx context.Context, account common.Address, c Capability) (bool, error)
	Grant(ctx context.Context, account common.Address, c Capability) error
	Revoke(ctx context.Context, account common.Address, c Capability) error
}

// NonceLedger is the append-only processed nonce set of one instance.
// MarkProcessed fails with ErrNonceAlreadyProcessed for a consumed nonce.
type NonceLedger interface {
	IsProcessed(ctx context.Context, nonce uint64) (bool, error)
	MarkProcessed(ctx context.Context, nonce uint64) error
}

// EventLog appends immutable bridge events. Implementations fill in EventMeta.
type EventLog interface {
	AppendSwap(ctx context.Context, ev *SwapInitialized) error
	AppendRedeem(ctx context.Context, ev *Redeemed) error
}

// Tx is a unit of work. Either every effect made through it is committed or none is.
type Tx interface {
	Ledger(id string) (TokenLedger, error)
	Nonces(bridgeID string) NonceLedger
	Events() EventLog
}

// EventFilter selects events of one bridge after a sequence number.
type EventFilter struct {
	BridgeID string
	After    uint64
	Limit    int
}

// EventReader reads the observable event log.
type EventReader interface {
	ListSwaps(ctx context.Context, f EventFilter) ([]*SwapInitialized, error)
	ListRedeems(ctx context.Context, f EventFilter) ([]*Redeemed, error)
}

// Store hosts token ledgers, nonce sets and the event log.
type Store interface {
	EventReader
	// RunInTx runs fn in a transaction, committing when fn returns nil.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// DefaultEventLimit caps event listings when no limit is given.
const DefaultEventLimit = 100

// Normalize applies the default limit.
func (f EventFilter) Normalize() EventFilter {
	if f.Limit <= 0 || f.Limit > 1000 {
		f.Limit = DefaultEventLimit
	}
	return f
}
