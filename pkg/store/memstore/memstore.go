// Package memstore is an in-process bridge.Store. Transactions are serialized and
// staged so that a failed unit of work leaves no trace.
package memstore

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

type balanceKey struct {
	ledger  string
	account common.Address
}

type capabilityKey struct {
	ledger  string
	account common.Address
	cap     bridge.Capability
}

type nonceKey struct {
	bridgeID string
	nonce    uint64
}

// Store keeps ledgers, nonce sets and events in memory.
type Store struct {
	mu sync.Mutex

	ledgers      map[string]struct{}
	balances     map[balanceKey]*big.Int
	capabilities map[capabilityKey]struct{}
	nonces       map[nonceKey]time.Time
	swaps        []*bridge.SwapInitialized
	redeems      []*bridge.Redeemed
	seq          uint64

	now func() time.Time
}

// New creates a store hosting the given ledgers.
func New(ledgerIDs ...string) *Store {
	s := &Store{
		ledgers:      make(map[string]struct{}, len(ledgerIDs)),
		balances:     make(map[balanceKey]*big.Int),
		capabilities: make(map[capabilityKey]struct{}),
		nonces:       make(map[nonceKey]time.Time),
		now:          time.Now,
	}
	for _, id := range ledgerIDs {
		s.ledgers[id] = struct{}{}
	}
	return s
}

// RunInTx runs fn against a staged view and applies the staged writes when fn succeeds.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bridge.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTx(s)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// ListSwaps returns swap events of a bridge with Seq greater than f.After.
func (s *Store) ListSwaps(_ context.Context, f bridge.EventFilter) ([]*bridge.SwapInitialized, error) {
	f = f.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*bridge.SwapInitialized, 0)
	for _, ev := range s.swaps {
		if ev.BridgeID != f.BridgeID || ev.Seq <= f.After {
			continue
		}
		cp := *ev
		cp.Amount = new(big.Int).Set(ev.Amount)
		out = append(out, &cp)
		if len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// ListRedeems returns redeem events of a bridge with Seq greater than f.After.
func (s *Store) ListRedeems(_ context.Context, f bridge.EventFilter) ([]*bridge.Redeemed, error) {
	f = f.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*bridge.Redeemed, 0)
	for _, ev := range s.redeems {
		if ev.BridgeID != f.BridgeID || ev.Seq <= f.After {
			continue
		}
		cp := *ev
		cp.Amount = new(big.Int).Set(ev.Amount)
		out = append(out, &cp)
		if len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// memTx stages writes on top of the committed state. The store mutex is held for its lifetime.
type memTx struct {
	s *Store

	balances     map[balanceKey]*big.Int
	capabilities map[capabilityKey]bool
	nonces       map[nonceKey]struct{}
	swaps        []*bridge.SwapInitialized
	redeems      []*bridge.Redeemed
	seq          uint64
}

func newTx(s *Store) *memTx {
	return &memTx{
		s:            s,
		balances:     make(map[balanceKey]*big.Int),
		capabilities: make(map[capabilityKey]bool),
		nonces:       make(map[nonceKey]struct{}),
		seq:          s.seq,
	}
}

func (t *memTx) Ledger(id string) (bridge.TokenLedger, error) {
	if _, ok := t.s.ledgers[id]; !ok {
		return nil, fmt.Errorf("%w: %s", bridge.ErrUnknownLedger, id)
	}
	return &ledger{tx: t, id: id}, nil
}

func (t *memTx) Nonces(bridgeID string) bridge.NonceLedger {
	return &nonceSet{tx: t, bridgeID: bridgeID}
}

func (t *memTx) Events() bridge.EventLog {
	return t
}

func (t *memTx) AppendSwap(_ context.Context, ev *bridge.SwapInitialized) error {
	t.stamp(&ev.EventMeta)
	t.swaps = append(t.swaps, ev)
	return nil
}

func (t *memTx) AppendRedeem(_ context.Context, ev *bridge.Redeemed) error {
	t.stamp(&ev.EventMeta)
	t.redeems = append(t.redeems, ev)
	return nil
}

func (t *memTx) stamp(meta *bridge.EventMeta) {
	t.seq++
	meta.Seq = t.seq
	meta.ID = uuid.New()
	meta.CreatedAt = t.s.now().UTC()
}

func (t *memTx) balance(k balanceKey) *big.Int {
	if b, ok := t.balances[k]; ok {
		return b
	}
	if b, ok := t.s.balances[k]; ok {
		return b
	}
	return new(big.Int)
}

func (t *memTx) hasCapability(k capabilityKey) bool {
	if held, ok := t.capabilities[k]; ok {
		return held
	}
	_, ok := t.s.capabilities[k]
	return ok
}

func (t *memTx) commit() {
	for k, b := range t.balances {
		t.s.balances[k] = b
	}
	for k, held := range t.capabilities {
		if held {
			t.s.capabilities[k] = struct{}{}
		} else {
			delete(t.s.capabilities, k)
		}
	}
	now := t.s.now().UTC()
	for k := range t.nonces {
		t.s.nonces[k] = now
	}
	t.s.swaps = append(t.s.swaps, t.swaps...)
	t.s.redeems = append(t.s.redeems, t.redeems...)
	t.s.seq = t.seq
}

type ledger struct {
	tx *memTx
	id string
}

func (l *ledger) Mint(_ context.Context, operator, account common.Address, amount *big.Int) error {
	if !l.tx.hasCapability(capabilityKey{l.id, operator, bridge.CapabilityMint}) {
		return fmt.Errorf("%w: %s cannot mint", bridge.ErrMissingCapability, operator.Hex())
	}
	k := balanceKey{l.id, account}
	l.tx.balances[k] = new(big.Int).Add(l.tx.balance(k), amount)
	return nil
}

func (l *ledger) Burn(_ context.Context, operator, account common.Address, amount *big.Int) error {
	if !l.tx.hasCapability(capabilityKey{l.id, operator, bridge.CapabilityBurn}) {
		return fmt.Errorf("%w: %s cannot burn", bridge.ErrMissingCapability, operator.Hex())
	}
	k := balanceKey{l.id, account}
	current := l.tx.balance(k)
	if current.Cmp(amount) < 0 {
		return fmt.Errorf("%w: have %s, need %s", bridge.ErrInsufficientBalance, current, amount)
	}
	l.tx.balances[k] = new(big.Int).Sub(current, amount)
	return nil
}

func (l *ledger) BalanceOf(_ context.Context, account common.Address) (*big.Int, error) {
	return new(big.Int).Set(l.tx.balance(balanceKey{l.id, account})), nil
}

func (l *ledger) HasCapability(_ context.Context, account common.Address, c bridge.Capability) (bool, error) {
	return l.tx.hasCapability(capabilityKey{l.id, account, c}), nil
}

func (l *ledger) Grant(_ context.Context, account common.Address, c bridge.Capability) error {
	l.tx.capabilities[capabilityKey{l.id, account, c}] = true
	return nil
}

func (l *ledger) Revoke(_ context.Context, account common.Address, c bridge.Capability) error {
	l.tx.capabilities[capabilityKey{l.id, account, c}] = false
	return nil
}

type nonceSet struct {
	tx       *memTx
	bridgeID string
}

func (n *nonceSet) IsProcessed(_ context.Context, nonce uint64) (bool, error) {
	k := nonceKey{n.bridgeID, nonce}
	if _, ok := n.tx.nonces[k]; ok {
		return true, nil
	}
	_, ok := n.tx.s.nonces[k]
	return ok, nil
}

func (n *nonceSet) MarkProcessed(ctx context.Context, nonce uint64) error {
	processed, _ := n.IsProcessed(ctx, nonce)
	if processed {
		return bridge.ErrNonceAlreadyProcessed
	}
	n.tx.nonces[nonceKey{n.bridgeID, nonce}] = struct{}{}
	return nil
}

// ProcessedNonces returns the consumed nonces of a bridge in ascending order.
func (s *Store) ProcessedNonces(bridgeID string) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]uint64, 0)
	for k := range s.nonces {
		if k.bridgeID == bridgeID {
			out = append(out, k.nonce)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
