package db

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps relay records in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	relays map[string]*Relay
	now    func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{relays: make(map[string]*Relay), now: time.Now}
}

func (m *MemoryStore) CreateRelay(_ context.Context, r *Relay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.relays[r.ID]; ok {
		return nil
	}
	cp := *r
	now := m.now().UTC()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	m.relays[r.ID] = &cp
	return nil
}

func (m *MemoryStore) GetRelay(_ context.Context, id string) (*Relay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.relays[id]
	if !ok {
		return nil, ErrRelayNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryStore) RecordAttempt(_ context.Context, id string, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.relays[id]
	if !ok {
		return ErrRelayNotFound
	}
	now := m.now().UTC()
	r.Status = a.Status
	r.Attempts++
	r.LastError = a.Error
	if a.RedeemEventID != nil {
		r.RedeemEventID = a.RedeemEventID
	}
	if a.Status == RelayStatusCompleted {
		r.CompletedAt = &now
	}
	r.UpdatedAt = now
	return nil
}

// ListRelays returns relay records with the given status, oldest first. An empty
// status lists every record.
func (m *MemoryStore) ListRelays(_ context.Context, status RelayStatus, limit int) ([]*Relay, error) {
	m.mu.Lock()
	out := make([]*Relay, 0)
	for _, r := range m.relays {
		if status == "" || r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
