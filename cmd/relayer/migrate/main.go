package main

import (
	"context"
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/burnmint-bridge/pkg/config"
	"github.com/chainsafe/burnmint-bridge/pkg/migrations/relayerdb"
	"github.com/chainsafe/burnmint-bridge/pkg/pgutil"
	mghelper "github.com/chainsafe/burnmint-bridge/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.relayer.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.LoadRelayer(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}
	if cfg.Store != config.StorePostgres {
		log.Fatalf("relayer store is %q, migrations only apply to %q", cfg.Store, config.StorePostgres)
	}

	ctx := context.Background()
	db, err := pgutil.ConnectDB(ctx, &cfg.Database, nil)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for relayer database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, relayerdb.Migrations)
	if err := mghelper.RunMigrations(ctx, migrator, flag.Args()...); err != nil {
		mghelper.Exitf(err.Error())
	}
}
