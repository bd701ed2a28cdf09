// Package db persists the relay records of the relayer.
package db

import (
	"errors"
	"fmt"
	"time"
)

// ErrRelayNotFound is returned when no relay record exists for an ID.
var ErrRelayNotFound = errors.New("relay not found")

// RelayStatus represents the current state of a relayed claim
type RelayStatus string

// ParseRelayStatus converts a string into a known RelayStatus.
func ParseRelayStatus(s string) (RelayStatus, error) {
	switch st := RelayStatus(s); st {
	case RelayStatusPending, RelayStatusCompleted, RelayStatusFailed:
		return st, nil
	default:
		return "", fmt.Errorf("unknown relay status %q", s)
	}
}

const (
	RelayStatusPending   RelayStatus = "pending"
	RelayStatusCompleted RelayStatus = "completed"
	RelayStatusFailed    RelayStatus = "failed"
)

// Relay tracks the submission of one signed claim to its destination bridge.
// ID is the claim key, unique per destination nonce.
type Relay struct {
	ID                string      `json:"id"`
	SourceBridge      string      `json:"source_bridge"`
	DestinationBridge string      `json:"destination_bridge"`
	Sender            string      `json:"sender"`
	Recipient         string      `json:"recipient"`
	Amount            string      `json:"amount"`
	Nonce             uint64      `json:"nonce"`
	Status            RelayStatus `json:"status"`
	Attempts          int         `json:"attempts"`
	LastError         *string     `json:"last_error,omitempty"`
	RedeemEventID     *string     `json:"redeem_event_id,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	CompletedAt       *time.Time  `json:"completed_at,omitempty"`
}

// Attempt is the outcome of one submission.
type Attempt struct {
	Status        RelayStatus
	Error         *string
	RedeemEventID *string
}
