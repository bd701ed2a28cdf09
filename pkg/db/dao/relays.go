package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// RelayDao is a data access object that maps directly to the 'relays' table in PostgreSQL.
type RelayDao struct {
	bun.BaseModel     `bun:"table:relays,alias:r"`
	ID                string     `json:"id" bun:"id,pk,type:varchar(160)"`
	SourceBridge      string     `json:"source_bridge" bun:"source_bridge,notnull,type:varchar(128)"`
	DestinationBridge string     `json:"destination_bridge" bun:"destination_bridge,notnull,type:varchar(128)"`
	Sender            string     `json:"sender" bun:"sender,notnull,type:varchar(42)"`
	Recipient         string     `json:"recipient" bun:"recipient,notnull,type:varchar(42)"`
	Amount            string     `json:"amount" bun:"amount,notnull,type:numeric(78,0)"`
	Nonce             uint64     `json:"nonce" bun:"nonce,notnull,type:numeric(20,0)"`
	Status            string     `json:"status" bun:"status,notnull,type:varchar(16)"`
	Attempts          int        `json:"attempts" bun:"attempts,notnull,default:0"`
	LastError         *string    `json:"last_error,omitempty" bun:"last_error,type:text"`
	RedeemEventID     *string    `json:"redeem_event_id,omitempty" bun:"redeem_event_id,type:varchar(36)"`
	CreatedAt         time.Time  `json:"created_at" bun:"created_at,notnull,nullzero,default:current_timestamp"`
	UpdatedAt         time.Time  `json:"updated_at" bun:"updated_at,notnull,nullzero,default:current_timestamp"`
	CompletedAt       *time.Time `json:"completed_at,omitempty" bun:"completed_at"`
}
