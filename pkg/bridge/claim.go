package bridge

import (
	"fmt"
	"time"
)

// ClaimStatus is the lifecycle state of a signed claim.
type ClaimStatus string

const (
	// ClaimPending claims are signed and not yet redeemed on the destination.
	ClaimPending ClaimStatus = "pending"
	// ClaimRedeemed claims have a matching Redeemed event on the destination.
	ClaimRedeemed ClaimStatus = "redeemed"
)

// ParseClaimStatus converts a string into a known ClaimStatus.
func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch c := ClaimStatus(s); c {
	case ClaimPending, ClaimRedeemed:
		return c, nil
	default:
		return "", fmt.Errorf("unknown claim status %q", s)
	}
}

// SignedClaim is a validator attestation that a swap on SourceBridge may be redeemed on
// DestinationBridge. It is keyed by (DestinationBridge, Nonce).
type SignedClaim struct {
	SourceBridge      string      `json:"source_bridge"`
	DestinationBridge string      `json:"destination_bridge"`
	Sender            string      `json:"sender"`
	Recipient         string      `json:"recipient"`
	Amount            string      `json:"amount"`
	Nonce             uint64      `json:"nonce"`
	ChainIDFrom       uint64      `json:"chain_id_from"`
	ChainIDTo         uint64      `json:"chain_id_to"`
	Hash              string      `json:"hash"`
	Signature         string      `json:"signature"`
	Validator         string      `json:"validator"`
	Status            ClaimStatus `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	RedeemedAt        *time.Time  `json:"redeemed_at,omitempty"`
}

// Key returns the identity of the claim, unique per destination nonce space.
func (c *SignedClaim) Key() string {
	return fmt.Sprintf("%s/%d", c.DestinationBridge, c.Nonce)
}

// RedeemBody returns the redeem call that collects the claim.
func (c *SignedClaim) RedeemBody() RedeemBody {
	return RedeemBody{
		Sender:    c.Sender,
		Recipient: c.Recipient,
		Amount:    c.Amount,
		Nonce:     c.Nonce,
		Signature: c.Signature,
	}
}

// ClaimQuery filters signed claims. Empty fields match everything.
type ClaimQuery struct {
	Recipient         string
	DestinationBridge string
	Status            ClaimStatus
	// AfterBridge and AfterNonce page through a listing: only claims ordered after
	// (AfterBridge, AfterNonce) match. Unset when AfterBridge is empty.
	AfterBridge string
	AfterNonce  uint64
	Limit       int
}

// Follows reports whether c is ordered after the page cursor of q.
func (q ClaimQuery) Follows(c *SignedClaim) bool {
	if q.AfterBridge == "" {
		return true
	}
	if c.DestinationBridge != q.AfterBridge {
		return c.DestinationBridge > q.AfterBridge
	}
	return c.Nonce > q.AfterNonce
}

// Next returns q positioned after c.
func (q ClaimQuery) Next(c *SignedClaim) ClaimQuery {
	q.AfterBridge = c.DestinationBridge
	q.AfterNonce = c.Nonce
	return q
}
