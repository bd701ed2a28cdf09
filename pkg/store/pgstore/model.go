package pgstore

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

const (
	eventTypeSwap   = "swap"
	eventTypeRedeem = "redeem"
)

// TokenBalanceDao maps to the 'token_balances' table.
type TokenBalanceDao struct {
	bun.BaseModel `bun:"table:token_balances,alias:tb"`
	LedgerID      string    `bun:"ledger_id,pk,type:varchar(64)"`
	Account       string    `bun:"account,pk,type:varchar(42)"`
	Balance       string    `bun:"balance,notnull,type:numeric(78,0),default:0"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,nullzero,default:current_timestamp"`
}

// CapabilityDao maps to the 'ledger_capabilities' table.
type CapabilityDao struct {
	bun.BaseModel `bun:"table:ledger_capabilities,alias:lc"`
	LedgerID      string    `bun:"ledger_id,pk,type:varchar(64)"`
	Account       string    `bun:"account,pk,type:varchar(42)"`
	Capability    string    `bun:"capability,pk,type:varchar(16)"`
	GrantedAt     time.Time `bun:"granted_at,notnull,nullzero,default:current_timestamp"`
}

// ProcessedNonceDao maps to the 'processed_nonces' table. The primary key is the
// at-most-once guarantee for redemptions.
type ProcessedNonceDao struct {
	bun.BaseModel `bun:"table:processed_nonces,alias:pn"`
	BridgeID      string    `bun:"bridge_id,pk,type:varchar(128)"`
	Nonce         uint64    `bun:"nonce,pk,type:numeric(20,0)"`
	ProcessedAt   time.Time `bun:"processed_at,notnull,nullzero,default:current_timestamp"`
}

// BridgeEventDao maps to the 'bridge_events' table.
type BridgeEventDao struct {
	bun.BaseModel `bun:"table:bridge_events,alias:be"`
	Seq           int64     `bun:"seq,pk,autoincrement"`
	EventID       uuid.UUID `bun:"event_id,unique,notnull,type:uuid"`
	BridgeID      string    `bun:"bridge_id,notnull,type:varchar(128)"`
	EventType     string    `bun:"event_type,notnull,type:varchar(16)"`
	Sender        string    `bun:"sender,notnull,type:varchar(42)"`
	Recipient     string    `bun:"recipient,notnull,type:varchar(42)"`
	Amount        string    `bun:"amount,notnull,type:numeric(78,0)"`
	Nonce         *uint64   `bun:"nonce,type:numeric(20,0)"`
	ChainIDFrom   uint64    `bun:"chain_id_from,notnull,type:numeric(20,0)"`
	ChainIDTo     uint64    `bun:"chain_id_to,notnull,type:numeric(20,0)"`
	CreatedAt     time.Time `bun:"created_at,notnull,nullzero,default:current_timestamp"`
}

func addressKey(a common.Address) string {
	return a.Hex()
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid stored amount %q", s)
	}
	return v, nil
}

func toEventMeta(dao *BridgeEventDao) bridge.EventMeta {
	return bridge.EventMeta{
		ID:        dao.EventID,
		Seq:       uint64(dao.Seq),
		BridgeID:  dao.BridgeID,
		CreatedAt: dao.CreatedAt,
	}
}

func toSwap(dao *BridgeEventDao) (*bridge.SwapInitialized, error) {
	amount, err := parseAmount(dao.Amount)
	if err != nil {
		return nil, err
	}
	return &bridge.SwapInitialized{
		EventMeta:   toEventMeta(dao),
		Sender:      common.HexToAddress(dao.Sender),
		Recipient:   common.HexToAddress(dao.Recipient),
		Amount:      amount,
		ChainIDFrom: dao.ChainIDFrom,
		ChainIDTo:   dao.ChainIDTo,
	}, nil
}

func toRedeemed(dao *BridgeEventDao) (*bridge.Redeemed, error) {
	amount, err := parseAmount(dao.Amount)
	if err != nil {
		return nil, err
	}
	ev := &bridge.Redeemed{
		EventMeta:   toEventMeta(dao),
		Sender:      common.HexToAddress(dao.Sender),
		Recipient:   common.HexToAddress(dao.Recipient),
		Amount:      amount,
		ChainIDFrom: dao.ChainIDFrom,
		ChainIDTo:   dao.ChainIDTo,
	}
	if dao.Nonce != nil {
		ev.Nonce = *dao.Nonce
	}
	return ev, nil
}
