package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/burnmint-bridge/pkg/app"
	"github.com/chainsafe/burnmint-bridge/pkg/app/node"
	"github.com/chainsafe/burnmint-bridge/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.node.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadNode(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = node.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "bridge-node: %v\n", err)
		os.Exit(1)
	}
}
