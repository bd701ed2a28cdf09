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
		log.Println("creating processed_nonces table...")
		return mghelper.CreateSchema(ctx, db, &pgstore.ProcessedNonceDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping processed_nonces table...")
		return mghelper.DropTables(ctx, db, &pgstore.ProcessedNonceDao{})
	})
}
