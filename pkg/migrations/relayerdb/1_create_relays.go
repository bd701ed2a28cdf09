package relayerdb

import (
	"context"
	"log"

	"github.com/chainsafe/burnmint-bridge/pkg/db/dao"
	mghelper "github.com/chainsafe/burnmint-bridge/pkg/pgutil/migrations"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating relays table...")
		if err := mghelper.CreateSchema(ctx, db, &dao.RelayDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dao.RelayDao{}, "status", "recipient")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping relays table...")
		return mghelper.DropTables(ctx, db, &dao.RelayDao{})
	})
}
