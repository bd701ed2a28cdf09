package validator

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

// ErrClaimNotFound is returned when no claim exists for a destination nonce.
var ErrClaimNotFound = errors.New("claim not found")

// DefaultClaimLimit caps claim listings when no limit is given.
const DefaultClaimLimit = 100

// ClaimStore persists signed claims and the event cursors of the watcher.
type ClaimStore interface {
	// Save stores a pending claim. Saving a claim whose key already exists is a no-op.
	Save(ctx context.Context, c *bridge.SignedClaim) error
	Get(ctx context.Context, destinationBridge string, nonce uint64) (*bridge.SignedClaim, error)
	// List returns claims matching q ordered by destination bridge and nonce.
	List(ctx context.Context, q bridge.ClaimQuery) ([]*bridge.SignedClaim, error)
	// MarkRedeemed flips a claim to redeemed. It returns ErrClaimNotFound for unknown claims.
	MarkRedeemed(ctx context.Context, destinationBridge string, nonce uint64, at time.Time) error
	Cursor(ctx context.Context, name string) (uint64, error)
	SetCursor(ctx context.Context, name string, seq uint64) error
}

func claimKey(destinationBridge string, nonce uint64) string {
	c := bridge.SignedClaim{DestinationBridge: destinationBridge, Nonce: nonce}
	return c.Key()
}

func matches(c *bridge.SignedClaim, q bridge.ClaimQuery) bool {
	if q.Recipient != "" && !strings.EqualFold(c.Recipient, q.Recipient) {
		return false
	}
	if q.DestinationBridge != "" && c.DestinationBridge != q.DestinationBridge {
		return false
	}
	if q.Status != "" && c.Status != q.Status {
		return false
	}
	return q.Follows(c)
}

func sortClaims(out []*bridge.SignedClaim) {
	sort.Slice(out, func(a, b int) bool {
		if out[a].DestinationBridge != out[b].DestinationBridge {
			return out[a].DestinationBridge < out[b].DestinationBridge
		}
		return out[a].Nonce < out[b].Nonce
	})
}

func limitOf(q bridge.ClaimQuery) int {
	if q.Limit <= 0 || q.Limit > 1000 {
		return DefaultClaimLimit
	}
	return q.Limit
}

// MemoryStore is an in-process ClaimStore.
type MemoryStore struct {
	mu      sync.RWMutex
	claims  map[string]*bridge.SignedClaim
	cursors map[string]uint64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		claims:  make(map[string]*bridge.SignedClaim),
		cursors: make(map[string]uint64),
	}
}

func (s *MemoryStore) Save(_ context.Context, c *bridge.SignedClaim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[c.Key()]; ok {
		return nil
	}
	cp := *c
	s.claims[c.Key()] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, destinationBridge string, nonce uint64) (*bridge.SignedClaim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.claims[claimKey(destinationBridge, nonce)]
	if !ok {
		return nil, ErrClaimNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, q bridge.ClaimQuery) ([]*bridge.SignedClaim, error) {
	s.mu.RLock()
	out := make([]*bridge.SignedClaim, 0)
	for _, c := range s.claims {
		if matches(c, q) {
			cp := *c
			out = append(out, &cp)
		}
	}
	s.mu.RUnlock()

	sortClaims(out)
	if limit := limitOf(q); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) MarkRedeemed(_ context.Context, destinationBridge string, nonce uint64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.claims[claimKey(destinationBridge, nonce)]
	if !ok {
		return ErrClaimNotFound
	}
	if c.Status == bridge.ClaimRedeemed {
		return nil
	}
	c.Status = bridge.ClaimRedeemed
	c.RedeemedAt = &at
	return nil
}

func (s *MemoryStore) Cursor(_ context.Context, name string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursors[name], nil
}

func (s *MemoryStore) SetCursor(_ context.Context, name string, seq uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[name] = seq
	return nil
}
