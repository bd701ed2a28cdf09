package bridge

import "errors"

// Operation failures. Every failure aborts the operation with no partial effect.
var (
	ErrSwapFailed            = errors.New("bridge: swap failed")
	ErrNotRecipient          = errors.New("bridge: only the recipient can collect the tokens")
	ErrNonceAlreadyProcessed = errors.New("bridge: nonce already processed")
	ErrInvalidSignature      = errors.New("bridge: invalid signature")
	ErrRedeemFailed          = errors.New("bridge: redeem failed")
	ErrZeroAmount            = errors.New("bridge: amount must be greater than zero")
	ErrAmountOverflow        = errors.New("bridge: amount exceeds 256 bits")
	ErrSameChain             = errors.New("bridge: chainIdFrom and chainIdTo must differ")
	ErrUnknownBridge         = errors.New("bridge: unknown bridge")
)

// Ledger failures.
var (
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrMissingCapability   = errors.New("ledger: missing capability")
	ErrNotAdmin            = errors.New("ledger: caller is not an admin")
	ErrUnknownLedger       = errors.New("ledger: unknown ledger")
)
