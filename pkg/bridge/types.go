// Package bridge implements the burn/mint bridge state machine: claim encoding,
// validator signature recovery, replay protection and the swap/redeem operations.
package bridge

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Config is the immutable configuration of one bridge instance.
type Config struct {
	// ID names the instance and scopes its nonce space.
	ID string
	// Address is the identity the instance uses as mint/burn operator on its ledger.
	Address common.Address
	// Validator is the only identity whose signatures authorize a redeem.
	Validator common.Address
	// Ledger references the token ledger the instance burns from and mints to.
	Ledger      string
	ChainIDFrom uint64
	ChainIDTo   uint64
}

// Validate checks the config invariants.
func (c Config) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("bridge id is required")
	}
	if strings.Contains(c.ID, "/") {
		return fmt.Errorf("bridge id %q must not contain '/'", c.ID)
	}
	if c.Ledger == "" {
		return fmt.Errorf("bridge %s: ledger is required", c.ID)
	}
	if c.Validator == (common.Address{}) {
		return fmt.Errorf("bridge %s: validator address is required", c.ID)
	}
	if c.ChainIDFrom == c.ChainIDTo {
		return fmt.Errorf("bridge %s: %w", c.ID, ErrSameChain)
	}
	return nil
}

// Claim is the message the validator signs to authorize a mint on the destination.
// The encoding packs Nonce and the chain ids as uint256 words, but they are held as
// uint64 here: a claim whose nonce or chain id needs more than 64 bits cannot be
// represented, and so cannot be redeemed, even if its signature is valid.
type Claim struct {
	Sender      common.Address
	Recipient   common.Address
	Amount      *big.Int
	Nonce       uint64
	ChainIDFrom uint64
	ChainIDTo   uint64
}

// Signature is a recoverable secp256k1 signature split into its components.
type Signature struct {
	V uint8
	R common.Hash
	S common.Hash
}

// RedeemRequest carries the claim fields and the validator signature submitted to Redeem.
// The chain identifiers are not part of the request: the instance supplies its own.
type RedeemRequest struct {
	Sender    common.Address
	Recipient common.Address
	Amount    *big.Int
	Nonce     uint64
	Signature Signature
}

// EventMeta is the log metadata attached to every recorded event.
type EventMeta struct {
	ID        uuid.UUID
	Seq       uint64
	BridgeID  string
	CreatedAt time.Time
}

// SwapInitialized records a burn on the source ledger.
type SwapInitialized struct {
	EventMeta
	Sender      common.Address
	Recipient   common.Address
	Amount      *big.Int
	ChainIDFrom uint64
	ChainIDTo   uint64
}

// Redeemed records a mint on the destination ledger.
type Redeemed struct {
	EventMeta
	Sender      common.Address
	Recipient   common.Address
	Amount      *big.Int
	Nonce       uint64
	ChainIDFrom uint64
	ChainIDTo   uint64
}

// Capability is a permission an account holds on a token ledger.
type Capability string

const (
	CapabilityMint  Capability = "mint"
	CapabilityBurn  Capability = "burn"
	CapabilityAdmin Capability = "admin"
)

// ParseCapability converts a string into a known Capability.
func ParseCapability(s string) (Capability, error) {
	switch c := Capability(s); c {
	case CapabilityMint, CapabilityBurn, CapabilityAdmin:
		return c, nil
	default:
		return "", fmt.Errorf("unknown capability %q", s)
	}
}
