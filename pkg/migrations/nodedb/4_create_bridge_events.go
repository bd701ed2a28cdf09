package nodedb

import (
	"context"
	"log"

	mghelper "github.com/chainsafe/burnmint-bridge/pkg/pgutil/migrations"
	"github.com/chainsafe/burnmint-bridge/pkg/store/pgstore"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating bridge_events table...")
		if err := mghelper.CreateSchema(ctx, db, &pgstore.BridgeEventDao{}); err != nil {
			return err
		}
		return mghelper.CreateCompositeIndex(ctx, db, (*pgstore.BridgeEventDao)(nil),
			"idx_bridge_events_bridge_type_seq", "bridge_id", "event_type", "seq")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping bridge_events table...")
		return mghelper.DropTables(ctx, db, &pgstore.BridgeEventDao{})
	})
}
