package bridge

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Registry indexes the bridge instances hosted by one process.
type Registry struct {
	instances map[string]*Instance
}

// NewRegistry indexes instances by ID. IDs must be unique.
func NewRegistry(instances ...*Instance) (*Registry, error) {
	r := &Registry{instances: make(map[string]*Instance, len(instances))}
	for _, inst := range instances {
		if _, ok := r.instances[inst.ID()]; ok {
			return nil, fmt.Errorf("duplicate bridge id %q", inst.ID())
		}
		r.instances[inst.ID()] = inst
	}
	return r, nil
}

// Get returns the instance with the given ID.
func (r *Registry) Get(id string) (*Instance, error) {
	inst, ok := r.instances[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBridge, id)
	}
	return inst, nil
}

// List returns all instances ordered by ID.
func (r *Registry) List() []*Instance {
	out := make([]*Instance, 0, len(r.instances))
	for _, inst := range r.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID() < out[b].ID() })
	return out
}

// LedgerSetup describes the deployment state of one token ledger.
type LedgerSetup struct {
	ID              string
	Admin           common.Address
	InitialBalances map[common.Address]*big.Int
}

// bootstrapMarker is the nonce set recording that a ledger has been bootstrapped. It shares
// the nonce namespace with bridge ids, which therefore may not contain "/".
func bootstrapMarker(ledgerID string) string {
	return "bootstrap/" + ledgerID
}

// Bootstrap seeds the ledger admin and initial balances once per ledger and, when
// grantRoles is set, gives every bridge mint and burn capability on its ledger.
// It is safe to run on every start. After the first run the capability table is owned by
// the admin API: a revoked admin stays revoked. Bridge roles are granted again on every
// start while grantRoles is set.
func Bootstrap(ctx context.Context, store Store, ledgers []LedgerSetup, bridges []Config, grantRoles bool) error {
	for _, l := range ledgers {
		err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			ledger, err := tx.Ledger(l.ID)
			if err != nil {
				return err
			}
			marker := tx.Nonces(bootstrapMarker(l.ID))
			done, err := marker.IsProcessed(ctx, 0)
			if err != nil || done {
				return err
			}
			if err = ledger.Grant(ctx, l.Admin, CapabilityAdmin); err != nil {
				return err
			}
			if len(l.InitialBalances) > 0 {
				if err = ledger.Grant(ctx, l.Admin, CapabilityMint); err != nil {
					return err
				}
				for account, amount := range l.InitialBalances {
					if err = ledger.Mint(ctx, l.Admin, account, amount); err != nil {
						return fmt.Errorf("initial balance for %s: %w", account.Hex(), err)
					}
				}
			}
			return marker.MarkProcessed(ctx, 0)
		})
		if err != nil {
			return fmt.Errorf("bootstrap ledger %s: %w", l.ID, err)
		}
	}

	if !grantRoles {
		return nil
	}
	for _, b := range bridges {
		err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			ledger, err := tx.Ledger(b.Ledger)
			if err != nil {
				return err
			}
			if err = ledger.Grant(ctx, b.Address, CapabilityMint); err != nil {
				return err
			}
			return ledger.Grant(ctx, b.Address, CapabilityBurn)
		})
		if err != nil {
			return fmt.Errorf("grant roles to bridge %s: %w", b.ID, err)
		}
	}
	return nil
}
