package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/burnmint-bridge/pkg/app"
	relayerapp "github.com/chainsafe/burnmint-bridge/pkg/app/relayer"
	"github.com/chainsafe/burnmint-bridge/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.relayer.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadRelayer(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = relayerapp.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "relayer: %v\n", err)
		os.Exit(1)
	}
}
