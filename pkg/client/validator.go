package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

// ValidatorInfo describes a validator service.
type ValidatorInfo struct {
	Address string `json:"address"`
}

// ValidatorInfo returns the address the validator signs with.
func (c *Client) ValidatorInfo(ctx context.Context) (*ValidatorInfo, error) {
	var out ValidatorInfo
	if err := c.get(ctx, "/api/v1/validator", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Claims lists signed claims matching q.
func (c *Client) Claims(ctx context.Context, q bridge.ClaimQuery) ([]bridge.SignedClaim, error) {
	query := url.Values{}
	if q.Recipient != "" {
		query.Set("recipient", q.Recipient)
	}
	if q.DestinationBridge != "" {
		query.Set("bridge", q.DestinationBridge)
	}
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.AfterBridge != "" {
		query.Set("after_bridge", q.AfterBridge)
		query.Set("after_nonce", strconv.FormatUint(q.AfterNonce, 10))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var out []bridge.SignedClaim
	if err := c.get(ctx, "/api/v1/claims", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Claim returns the signed claim for nonce on the destination bridge.
func (c *Client) Claim(ctx context.Context, destinationBridge string, nonce uint64) (*bridge.SignedClaim, error) {
	var out bridge.SignedClaim
	path := "/api/v1/claims/" + url.PathEscape(destinationBridge) + "/" + strconv.FormatUint(nonce, 10)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
