package bridge

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerAdmin performs administrative operations on the ledgers of a store,
// taking the same account locks the bridge instances take.
type LedgerAdmin struct {
	store  Store
	locker *Locker
}

// NewLedgerAdmin creates a LedgerAdmin sharing locker with the hosted instances.
func NewLedgerAdmin(store Store, locker *Locker) *LedgerAdmin {
	return &LedgerAdmin{store: store, locker: locker}
}

// SeedAdmin grants the admin capability without a granter check. It is used at bootstrap.
func (a *LedgerAdmin) SeedAdmin(ctx context.Context, ledgerID string, admin common.Address) error {
	return a.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		ledger, err := tx.Ledger(ledgerID)
		if err != nil {
			return err
		}
		return ledger.Grant(ctx, admin, CapabilityAdmin)
	})
}

// GrantCapability gives account the capability c. The granter must hold CapabilityAdmin.
func (a *LedgerAdmin) GrantCapability(ctx context.Context, ledgerID string, granter, account common.Address, c Capability) error {
	return a.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		ledger, err := a.adminLedger(ctx, tx, ledgerID, granter)
		if err != nil {
			return err
		}
		return ledger.Grant(ctx, account, c)
	})
}

// RevokeCapability removes the capability c from account. The granter must hold CapabilityAdmin.
func (a *LedgerAdmin) RevokeCapability(ctx context.Context, ledgerID string, granter, account common.Address, c Capability) error {
	return a.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		ledger, err := a.adminLedger(ctx, tx, ledgerID, granter)
		if err != nil {
			return err
		}
		return ledger.Revoke(ctx, account, c)
	})
}

// Mint credits account with amount on behalf of operator, who must hold CapabilityMint.
func (a *LedgerAdmin) Mint(ctx context.Context, ledgerID string, operator, account common.Address, amount *big.Int) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	unlock := a.locker.Lock(AccountKey(ledgerID, account))
	defer unlock()

	return a.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		ledger, err := tx.Ledger(ledgerID)
		if err != nil {
			return err
		}
		return ledger.Mint(ctx, operator, account, amount)
	})
}

// BalanceOf returns the balance of account on ledgerID.
func (a *LedgerAdmin) BalanceOf(ctx context.Context, ledgerID string, account common.Address) (*big.Int, error) {
	var balance *big.Int
	err := a.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		ledger, err := tx.Ledger(ledgerID)
		if err != nil {
			return err
		}
		balance, err = ledger.BalanceOf(ctx, account)
		return err
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// HasCapability reports whether account holds c on ledgerID.
func (a *LedgerAdmin) HasCapability(ctx context.Context, ledgerID string, account common.Address, c Capability) (bool, error) {
	var ok bool
	err := a.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		ledger, err := tx.Ledger(ledgerID)
		if err != nil {
			return err
		}
		ok, err = ledger.HasCapability(ctx, account, c)
		return err
	})
	return ok, err
}

func (a *LedgerAdmin) adminLedger(ctx context.Context, tx Tx, ledgerID string, granter common.Address) (TokenLedger, error) {
	ledger, err := tx.Ledger(ledgerID)
	if err != nil {
		return nil, err
	}
	isAdmin, err := ledger.HasCapability(ctx, granter, CapabilityAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin capability: %w", err)
	}
	if !isAdmin {
		return nil, ErrNotAdmin
	}
	return ledger, nil
}
