package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/chainsafe/burnmint-bridge/pkg/db"
)

// Relays lists the relay records of a relayer. An empty status lists all of them.
func (c *Client) Relays(ctx context.Context, status db.RelayStatus, limit int) ([]db.Relay, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out []db.Relay
	if err := c.get(ctx, "/api/v1/relays", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Relay returns the relay record of the claim for nonce on the destination bridge.
func (c *Client) Relay(ctx context.Context, destinationBridge string, nonce uint64) (*db.Relay, error) {
	var out db.Relay
	path := "/api/v1/relays/" + url.PathEscape(destinationBridge) + "/" + strconv.FormatUint(nonce, 10)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
