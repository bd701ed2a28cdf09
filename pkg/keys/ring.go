package keys

import (
	"crypto/ecdsa"
	"fmt"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Ring holds custodial keys indexed by address.
type Ring struct {
	mu   sync.RWMutex
	keys map[common.Address]*ecdsa.PrivateKey
}

// NewRing creates a ring holding keys.
func NewRing(keys ...*ecdsa.PrivateKey) *Ring {
	r := &Ring{keys: make(map[common.Address]*ecdsa.PrivateKey, len(keys))}
	for _, k := range keys {
		r.Add(k)
	}
	return r
}

// Add stores key under its address.
func (r *Ring) Add(key *ecdsa.PrivateKey) common.Address {
	addr := Address(key)
	r.mu.Lock()
	r.keys[addr] = key
	r.mu.Unlock()
	return addr
}

// Get returns the key controlling addr.
func (r *Ring) Get(addr common.Address) (*ecdsa.PrivateKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.keys[addr]
	if !ok {
		return nil, fmt.Errorf("no key held for %s", addr.Hex())
	}
	return key, nil
}

// Addresses returns the held addresses in ascending order.
func (r *Ring) Addresses() []common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]common.Address, 0, len(r.keys))
	for addr := range r.keys {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}
