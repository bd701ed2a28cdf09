package client

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

// Bridges lists the bridge instances hosted by the node.
func (c *Client) Bridges(ctx context.Context) ([]bridge.BridgeInfo, error) {
	var out []bridge.BridgeInfo
	if err := c.get(ctx, "/api/v1/bridges", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bridge returns one bridge instance.
func (c *Client) Bridge(ctx context.Context, id string) (*bridge.BridgeInfo, error) {
	var out bridge.BridgeInfo
	if err := c.get(ctx, "/api/v1/bridges/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Swap burns amount from the signing account on bridgeID in favour of recipient.
func (c *Client) Swap(ctx context.Context, bridgeID string, recipient common.Address, amount *big.Int) (*bridge.SwapEvent, error) {
	var out bridge.SwapEvent
	req := bridge.SwapRequest{Recipient: recipient.Hex(), Amount: amount.String()}
	if err := c.send(ctx, http.MethodPost, "/api/v1/bridges/"+url.PathEscape(bridgeID)+"/swap", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Redeem submits a signed claim on bridgeID. The signing account must be the recipient.
func (c *Client) Redeem(ctx context.Context, bridgeID string, body bridge.RedeemBody) (*bridge.RedeemEvent, error) {
	var out bridge.RedeemEvent
	if err := c.send(ctx, http.MethodPost, "/api/v1/bridges/"+url.PathEscape(bridgeID)+"/redeem", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSwaps returns swap events of a bridge after a sequence number.
func (c *Client) ListSwaps(ctx context.Context, filter bridge.EventFilter) ([]bridge.SwapEvent, error) {
	var out []bridge.SwapEvent
	path := "/api/v1/bridges/" + url.PathEscape(filter.BridgeID) + "/events/swaps"
	if err := c.get(ctx, path, eventQuery(filter), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRedeems returns redeem events of a bridge after a sequence number.
func (c *Client) ListRedeems(ctx context.Context, filter bridge.EventFilter) ([]bridge.RedeemEvent, error) {
	var out []bridge.RedeemEvent
	path := "/api/v1/bridges/" + url.PathEscape(filter.BridgeID) + "/events/redeems"
	if err := c.get(ctx, path, eventQuery(filter), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Balance returns the balance of account on ledgerID.
func (c *Client) Balance(ctx context.Context, ledgerID string, account common.Address) (*big.Int, error) {
	var out bridge.BalanceResponse
	path := "/api/v1/ledgers/" + url.PathEscape(ledgerID) + "/balances/" + account.Hex()
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	balance, ok := new(big.Int).SetString(out.Balance, 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q in response", out.Balance)
	}
	return balance, nil
}

// Mint credits account on ledgerID. The signing account must hold the mint capability.
func (c *Client) Mint(ctx context.Context, ledgerID string, account common.Address, amount *big.Int) (*bridge.BalanceResponse, error) {
	var out bridge.BalanceResponse
	req := bridge.MintRequest{Account: account.Hex(), Amount: amount.String()}
	if err := c.send(ctx, http.MethodPost, "/api/v1/ledgers/"+url.PathEscape(ledgerID)+"/mint", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Grant gives account a capability on ledgerID. The signing account must be an admin.
func (c *Client) Grant(ctx context.Context, ledgerID string, account common.Address, capability bridge.Capability) error {
	req := bridge.CapabilityRequest{Account: account.Hex(), Capability: string(capability)}
	return c.send(ctx, http.MethodPost, "/api/v1/ledgers/"+url.PathEscape(ledgerID)+"/capabilities", req, nil)
}

// Revoke removes a capability from account on ledgerID. The signing account must be an admin.
func (c *Client) Revoke(ctx context.Context, ledgerID string, account common.Address, capability bridge.Capability) error {
	req := bridge.CapabilityRequest{Account: account.Hex(), Capability: string(capability)}
	return c.send(ctx, http.MethodDelete, "/api/v1/ledgers/"+url.PathEscape(ledgerID)+"/capabilities", req, nil)
}

func eventQuery(f bridge.EventFilter) url.Values {
	q := url.Values{}
	if f.After > 0 {
		q.Set("after", strconv.FormatUint(f.After, 10))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
