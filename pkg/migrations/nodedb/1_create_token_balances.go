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
		log.Println("creating token_balances table...")
		if err := mghelper.CreateSchema(ctx, db, &pgstore.TokenBalanceDao{}); err != nil {
			return err
		}
		_, err := db.ExecContext(ctx,
			`ALTER TABLE token_balances ADD CONSTRAINT token_balances_non_negative CHECK (balance >= 0)`)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping token_balances table...")
		return mghelper.DropTables(ctx, db, &pgstore.TokenBalanceDao{})
	})
}
