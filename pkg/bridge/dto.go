package bridge

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// BridgeInfo is the public view of a bridge instance.
type BridgeInfo struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	Validator   string `json:"validator"`
	Ledger      string `json:"ledger"`
	ChainIDFrom uint64 `json:"chain_id_from"`
	ChainIDTo   uint64 `json:"chain_id_to"`
}

// InfoFromConfig converts an instance config into its public view.
func InfoFromConfig(c Config) BridgeInfo {
	return BridgeInfo{
		ID:          c.ID,
		Address:     c.Address.Hex(),
		Validator:   c.Validator.Hex(),
		Ledger:      c.Ledger,
		ChainIDFrom: c.ChainIDFrom,
		ChainIDTo:   c.ChainIDTo,
	}
}

// SwapRequest is the body of a swap call. Amount is a base 10 integer in base units.
type SwapRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// RedeemBody is the body of a redeem call.
type RedeemBody struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Nonce     uint64 `json:"nonce"`
	Signature string `json:"signature"`
}

// MintRequest is the body of an administrative mint.
type MintRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

// CapabilityRequest is the body of a grant or revoke call.
type CapabilityRequest struct {
	Account    string `json:"account"`
	Capability string `json:"capability"`
}

// BalanceResponse reports the balance of an account on a ledger.
type BalanceResponse struct {
	Ledger  string `json:"ledger"`
	Account string `json:"account"`
	Balance string `json:"balance"`
}

// SwapEvent is the JSON form of SwapInitialized.
type SwapEvent struct {
	ID          uuid.UUID `json:"id"`
	Seq         uint64    `json:"seq"`
	BridgeID    string    `json:"bridge_id"`
	Sender      string    `json:"sender"`
	Recipient   string    `json:"recipient"`
	Amount      string    `json:"amount"`
	ChainIDFrom uint64    `json:"chain_id_from"`
	ChainIDTo   uint64    `json:"chain_id_to"`
	CreatedAt   time.Time `json:"created_at"`
}

// RedeemEvent is the JSON form of Redeemed.
type RedeemEvent struct {
	ID          uuid.UUID `json:"id"`
	Seq         uint64    `json:"seq"`
	BridgeID    string    `json:"bridge_id"`
	Sender      string    `json:"sender"`
	Recipient   string    `json:"recipient"`
	Amount      string    `json:"amount"`
	Nonce       uint64    `json:"nonce"`
	ChainIDFrom uint64    `json:"chain_id_from"`
	ChainIDTo   uint64    `json:"chain_id_to"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSwapEvent converts a recorded swap into its JSON form.
func NewSwapEvent(ev *SwapInitialized) SwapEvent {
	return SwapEvent{
		ID:          ev.ID,
		Seq:         ev.Seq,
		BridgeID:    ev.BridgeID,
		Sender:      ev.Sender.Hex(),
		Recipient:   ev.Recipient.Hex(),
		Amount:      ev.Amount.String(),
		ChainIDFrom: ev.ChainIDFrom,
		ChainIDTo:   ev.ChainIDTo,
		CreatedAt:   ev.CreatedAt,
	}
}

// NewRedeemEvent converts a recorded redeem into its JSON form.
func NewRedeemEvent(ev *Redeemed) RedeemEvent {
	return RedeemEvent{
		ID:          ev.ID,
		Seq:         ev.Seq,
		BridgeID:    ev.BridgeID,
		Sender:      ev.Sender.Hex(),
		Recipient:   ev.Recipient.Hex(),
		Amount:      ev.Amount.String(),
		Nonce:       ev.Nonce,
		ChainIDFrom: ev.ChainIDFrom,
		ChainIDTo:   ev.ChainIDTo,
		CreatedAt:   ev.CreatedAt,
	}
}

// Event converts the JSON form back into a SwapInitialized.
func (e SwapEvent) Event() (*SwapInitialized, error) {
	sender, err := ParseAddress("sender", e.Sender)
	if err != nil {
		return nil, err
	}
	recipient, err := ParseAddress("recipient", e.Recipient)
	if err != nil {
		return nil, err
	}
	amount, err := ParseAmount(e.Amount)
	if err != nil {
		return nil, err
	}
	return &SwapInitialized{
		EventMeta:   EventMeta{ID: e.ID, Seq: e.Seq, BridgeID: e.BridgeID, CreatedAt: e.CreatedAt},
		Sender:      sender,
		Recipient:   recipient,
		Amount:      amount,
		ChainIDFrom: e.ChainIDFrom,
		ChainIDTo:   e.ChainIDTo,
	}, nil
}

// Request converts the body into a RedeemRequest.
func (b RedeemBody) Request() (*RedeemRequest, error) {
	sender, err := ParseAddress("sender", b.Sender)
	if err != nil {
		return nil, err
	}
	recipient, err := ParseAddress("recipient", b.Recipient)
	if err != nil {
		return nil, err
	}
	amount, err := ParseAmount(b.Amount)
	if err != nil {
		return nil, err
	}
	sig, err := ParseSignature(b.Signature)
	if err != nil {
		return nil, err
	}
	return &RedeemRequest{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Nonce:     b.Nonce,
		Signature: sig,
	}, nil
}

// NewRedeemBody converts a RedeemRequest into its JSON form.
func NewRedeemBody(req *RedeemRequest) RedeemBody {
	return RedeemBody{
		Sender:    req.Sender.Hex(),
		Recipient: req.Recipient.Hex(),
		Amount:    req.Amount.String(),
		Nonce:     req.Nonce,
		Signature: req.Signature.Hex(),
	}
}

// ParseAddress parses a 0x prefixed hex address. field names the value in errors.
func ParseAddress(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", field, s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a base 10 amount. Range checks are left to the operations.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}
