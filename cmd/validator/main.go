package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/burnmint-bridge/pkg/app"
	validatorapp "github.com/chainsafe/burnmint-bridge/pkg/app/validator"
	"github.com/chainsafe/burnmint-bridge/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.validator.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadValidator(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = validatorapp.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "validator: %v\n", err)
		os.Exit(1)
	}
}
