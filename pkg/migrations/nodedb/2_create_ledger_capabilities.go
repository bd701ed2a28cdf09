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
		log.Println("creating ledger_capabilities table...")
		return mghelper.CreateSchema(ctx, db, &pgstore.CapabilityDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping ledger_capabilities table...")
		return mghelper.DropTables(ctx, db, &pgstore.CapabilityDao{})
	})
}
