package relayer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/client"
	"github.com/chainsafe/burnmint-bridge/pkg/keys"
)

// ClaimLister is the part of the validator API the relayer reads
type ClaimLister interface {
	Claims(ctx context.Context, q bridge.ClaimQuery) ([]bridge.SignedClaim, error)
}

// ValidatorSource implements Source over the validator claim API
type ValidatorSource struct {
	validator ClaimLister
	batchSize int
}

// NewValidatorSource creates a Source reading the claim listing in pages of batchSize
func NewValidatorSource(validator ClaimLister, batchSize int) *ValidatorSource {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ValidatorSource{validator: validator, batchSize: batchSize}
}

// PendingClaims pages through every pending claim of recipient. Claims whose relay
// already failed stay pending at the validator, so a single page could hold only those.
func (s *ValidatorSource) PendingClaims(ctx context.Context, recipient common.Address) ([]bridge.SignedClaim, error) {
	q := bridge.ClaimQuery{
		Recipient: recipient.Hex(),
		Status:    bridge.ClaimPending,
		Limit:     s.batchSize,
	}

	var out []bridge.SignedClaim
	for {
		page, err := s.validator.Claims(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, c := range page {
			if strings.EqualFold(c.Recipient, recipient.Hex()) && c.Status == bridge.ClaimPending {
				out = append(out, c)
			}
		}
		if len(page) < s.batchSize {
			return out, nil
		}
		last := page[len(page)-1]
		next := q.Next(&last)
		if next == q {
			return nil, fmt.Errorf("claim listing did not advance past %s", last.Key())
		}
		q = next
	}
}

// NodeDestination implements Destination by redeeming on the node as the recipient
type NodeDestination struct {
	node *client.Client
	ring *keys.Ring
}

// NewNodeDestination creates a Destination signing redeem calls with the keys in ring
func NewNodeDestination(node *client.Client, ring *keys.Ring) *NodeDestination {
	return &NodeDestination{node: node, ring: ring}
}

func (d *NodeDestination) SubmitRedeem(ctx context.Context, claim *bridge.SignedClaim) (*bridge.RedeemEvent, error) {
	recipient, err := bridge.ParseAddress("recipient", claim.Recipient)
	if err != nil {
		return nil, err
	}
	key, err := d.ring.Get(recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bridge.ErrNotRecipient, err)
	}
	return d.node.As(key).Redeem(ctx, claim.DestinationBridge, claim.RedeemBody())
}
