// Package pgstore is the PostgreSQL implementation of bridge.Store built on bun.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

type pgStore struct {
	db      *bun.DB
	ledgers map[string]struct{}
}

// NewStore creates a postgres bridge store hosting the given ledgers.
func NewStore(db *bun.DB, ledgerIDs ...string) *pgStore {
	ledgers := make(map[string]struct{}, len(ledgerIDs))
	for _, id := range ledgerIDs {
		ledgers[id] = struct{}{}
	}
	return &pgStore{db: db, ledgers: ledgers}
}

func (s *pgStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bridge.Tx) error) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &pgTx{tx: tx, ledgers: s.ledgers})
	})
}

func (s *pgStore) ListSwaps(ctx context.Context, f bridge.EventFilter) ([]*bridge.SwapInitialized, error) {
	daos, err := s.listEvents(ctx, eventTypeSwap, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list swaps: %w", err)
	}
	out := make([]*bridge.SwapInitialized, 0, len(daos))
	for i := range daos {
		ev, err := toSwap(&daos[i])
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *pgStore) ListRedeems(ctx context.Context, f bridge.EventFilter) ([]*bridge.Redeemed, error) {
	daos, err := s.listEvents(ctx, eventTypeRedeem, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list redeems: %w", err)
	}
	out := make([]*bridge.Redeemed, 0, len(daos))
	for i := range daos {
		ev, err := toRedeemed(&daos[i])
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *pgStore) listEvents(ctx context.Context, eventType string, f bridge.EventFilter) ([]BridgeEventDao, error) {
	f = f.Normalize()
	var daos []BridgeEventDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("bridge_id = ?", f.BridgeID).
		Where("event_type = ?", eventType).
		Where("seq > ?", int64(f.After)).
		Order("seq ASC").
		Limit(f.Limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return daos, nil
}

type pgTx struct {
	tx      bun.Tx
	ledgers map[string]struct{}
}

func (t *pgTx) Ledger(id string) (bridge.TokenLedger, error) {
	if _, ok := t.ledgers[id]; !ok {
		return nil, fmt.Errorf("%w: %s", bridge.ErrUnknownLedger, id)
	}
	return &pgLedger{tx: t.tx, id: id}, nil
}

func (t *pgTx) Nonces(bridgeID string) bridge.NonceLedger {
	return &pgNonces{tx: t.tx, bridgeID: bridgeID}
}

func (t *pgTx) Events() bridge.EventLog {
	return t
}

func (t *pgTx) AppendSwap(ctx context.Context, ev *bridge.SwapInitialized) error {
	dao := &BridgeEventDao{
		EventID:     uuid.New(),
		BridgeID:    ev.BridgeID,
		EventType:   eventTypeSwap,
		Sender:      addressKey(ev.Sender),
		Recipient:   addressKey(ev.Recipient),
		Amount:      ev.Amount.String(),
		ChainIDFrom: ev.ChainIDFrom,
		ChainIDTo:   ev.ChainIDTo,
	}
	if err := t.insertEvent(ctx, dao); err != nil {
		return fmt.Errorf("failed to record swap: %w", err)
	}
	ev.EventMeta = toEventMeta(dao)
	return nil
}

func (t *pgTx) AppendRedeem(ctx context.Context, ev *bridge.Redeemed) error {
	nonce := ev.Nonce
	dao := &BridgeEventDao{
		EventID:     uuid.New(),
		BridgeID:    ev.BridgeID,
		EventType:   eventTypeRedeem,
		Sender:      addressKey(ev.Sender),
		Recipient:   addressKey(ev.Recipient),
		Amount:      ev.Amount.String(),
		Nonce:       &nonce,
		ChainIDFrom: ev.ChainIDFrom,
		ChainIDTo:   ev.ChainIDTo,
	}
	if err := t.insertEvent(ctx, dao); err != nil {
		return fmt.Errorf("failed to record redeem: %w", err)
	}
	ev.EventMeta = toEventMeta(dao)
	return nil
}

func (t *pgTx) insertEvent(ctx context.Context, dao *BridgeEventDao) error {
	_, err := t.tx.NewInsert().
		Model(dao).
		ExcludeColumn("seq", "created_at").
		Returning("seq, created_at").
		Exec(ctx)
	return err
}

type pgLedger struct {
	tx bun.Tx
	id string
}

func (l *pgLedger) requireCapability(ctx context.Context, operator common.Address, c bridge.Capability) error {
	ok, err := l.HasCapability(ctx, operator, c)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s cannot %s", bridge.ErrMissingCapability, operator.Hex(), c)
	}
	return nil
}

func (l *pgLedger) Mint(ctx context.Context, operator, account common.Address, amount *big.Int) error {
	if err := l.requireCapability(ctx, operator, bridge.CapabilityMint); err != nil {
		return err
	}
	_, err := l.tx.NewRaw(
		`INSERT INTO token_balances (ledger_id, account, balance) VALUES (?, ?, ?::NUMERIC)
		ON CONFLICT (ledger_id, account) DO UPDATE
		SET balance = token_balances.balance + EXCLUDED.balance, updated_at = NOW()`,
		l.id, addressKey(account), amount.String(),
	).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mint: %w", err)
	}
	return nil
}

func (l *pgLedger) Burn(ctx context.Context, operator, account common.Address, amount *big.Int) error {
	if err := l.requireCapability(ctx, operator, bridge.CapabilityBurn); err != nil {
		return err
	}
	res, err := l.tx.NewUpdate().
		Model((*TokenBalanceDao)(nil)).
		Set("balance = balance - ?::NUMERIC", amount.String()).
		Set("updated_at = NOW()").
		Where("ledger_id = ?", l.id).
		Where("account = ?", addressKey(account)).
		Where("balance >= ?::NUMERIC", amount.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to burn: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to burn: %w", err)
	}
	if n == 0 {
		return bridge.ErrInsufficientBalance
	}
	return nil
}

func (l *pgLedger) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	dao := new(TokenBalanceDao)
	err := l.tx.NewSelect().
		Model(dao).
		Where("ledger_id = ?", l.id).
		Where("account = ?", addressKey(account)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return parseAmount(dao.Balance)
}

func (l *pgLedger) HasCapability(ctx context.Context, account common.Address, c bridge.Capability) (bool, error) {
	exists, err := l.tx.NewSelect().
		Model((*CapabilityDao)(nil)).
		Where("ledger_id = ?", l.id).
		Where("account = ?", addressKey(account)).
		Where("capability = ?", string(c)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check capability: %w", err)
	}
	return exists, nil
}

func (l *pgLedger) Grant(ctx context.Context, account common.Address, c bridge.Capability) error {
	_, err := l.tx.NewInsert().
		Model(&CapabilityDao{LedgerID: l.id, Account: addressKey(account), Capability: string(c)}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to grant capability: %w", err)
	}
	return nil
}

func (l *pgLedger) Revoke(ctx context.Context, account common.Address, c bridge.Capability) error {
	_, err := l.tx.NewDelete().
		Model((*CapabilityDao)(nil)).
		Where("ledger_id = ?", l.id).
		Where("account = ?", addressKey(account)).
		Where("capability = ?", string(c)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to revoke capability: %w", err)
	}
	return nil
}

type pgNonces struct {
	tx       bun.Tx
	bridgeID string
}

func (n *pgNonces) IsProcessed(ctx context.Context, nonce uint64) (bool, error) {
	exists, err := n.tx.NewSelect().
		Model((*ProcessedNonceDao)(nil)).
		Where("bridge_id = ?", n.bridgeID).
		Where("nonce = ?", nonce).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check nonce: %w", err)
	}
	return exists, nil
}

func (n *pgNonces) MarkProcessed(ctx context.Context, nonce uint64) error {
	_, err := n.tx.NewInsert().
		Model(&ProcessedNonceDao{BridgeID: n.bridgeID, Nonce: nonce}).
		ExcludeColumn("processed_at").
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return bridge.ErrNonceAlreadyProcessed
		}
		return fmt.Errorf("failed to mark nonce: %w", err)
	}
	return nil
}
