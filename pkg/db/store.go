package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/chainsafe/burnmint-bridge/pkg/db/dao"
)

// Store provides relay record operations on PostgreSQL
type Store struct {
	db *bun.DB
}

// NewStore creates a new database store
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// CreateRelay inserts a relay record unless one with the same ID exists
func (s *Store) CreateRelay(ctx context.Context, r *Relay) error {
	_, err := s.db.NewInsert().
		Model(toDao(r)).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create relay %s: %w", r.ID, err)
	}
	return nil
}

// GetRelay retrieves a relay record by ID
func (s *Store) GetRelay(ctx context.Context, id string) (*Relay, error) {
	d := new(dao.RelayDao)
	err := s.db.NewSelect().Model(d).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRelayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get relay %s: %w", id, err)
	}
	return fromDao(d), nil
}

// RecordAttempt counts a submission and stores its outcome
func (s *Store) RecordAttempt(ctx context.Context, id string, a Attempt) error {
	q := s.db.NewUpdate().
		Model((*dao.RelayDao)(nil)).
		Set("status = ?", string(a.Status)).
		Set("attempts = attempts + 1").
		Set("last_error = ?", a.Error).
		Set("updated_at = current_timestamp").
		Where("id = ?", id)
	if a.RedeemEventID != nil {
		q = q.Set("redeem_event_id = ?", *a.RedeemEventID)
	}
	if a.Status == RelayStatusCompleted {
		q = q.Set("completed_at = current_timestamp")
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update relay %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRelayNotFound
	}
	return nil
}

// ListRelays returns relay records with the given status, oldest first. An empty
// status lists every record.
func (s *Store) ListRelays(ctx context.Context, status RelayStatus, limit int) ([]*Relay, error) {
	var daos []dao.RelayDao
	q := s.db.NewSelect().
		Model(&daos).
		Order("created_at ASC", "id ASC")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list relays: %w", err)
	}
	out := make([]*Relay, 0, len(daos))
	for i := range daos {
		out = append(out, fromDao(&daos[i]))
	}
	return out, nil
}

func toDao(r *Relay) *dao.RelayDao {
	return &dao.RelayDao{
		ID:                r.ID,
		SourceBridge:      r.SourceBridge,
		DestinationBridge: r.DestinationBridge,
		Sender:            r.Sender,
		Recipient:         r.Recipient,
		Amount:            r.Amount,
		Nonce:             r.Nonce,
		Status:            string(r.Status),
		Attempts:          r.Attempts,
		LastError:         r.LastError,
		RedeemEventID:     r.RedeemEventID,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		CompletedAt:       r.CompletedAt,
	}
}

func fromDao(d *dao.RelayDao) *Relay {
	return &Relay{
		ID:                d.ID,
		SourceBridge:      d.SourceBridge,
		DestinationBridge: d.DestinationBridge,
		Sender:            d.Sender,
		Recipient:         d.Recipient,
		Amount:            d.Amount,
		Nonce:             d.Nonce,
		Status:            RelayStatus(d.Status),
		Attempts:          d.Attempts,
		LastError:         d.LastError,
		RedeemEventID:     d.RedeemEventID,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		CompletedAt:       d.CompletedAt,
	}
}
