// Command bridgectl operates bridge nodes, validators and relayers from the shell.
package main

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chainsafe/burnmint-bridge/pkg/client"
	"github.com/chainsafe/burnmint-bridge/pkg/keys"
)

type globalOptions struct {
	nodeURL      string
	validatorURL string
	relayerURL   string
	privateKey   string
	encryptedKey string
	masterKey    string
	decimals     int32
	timeout      time.Duration
}

var opts globalOptions

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bridgectl",
		Short:         "Operate burn/mint bridge nodes, validators and relayers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.nodeURL, "node", envOr("BRIDGE_NODE_URL", "http://localhost:8080"), "bridge node API URL")
	f.StringVar(&opts.validatorURL, "validator", envOr("BRIDGE_VALIDATOR_URL", "http://localhost:8081"), "validator API URL")
	f.StringVar(&opts.relayerURL, "relayer", envOr("BRIDGE_RELAYER_URL", "http://localhost:8082"), "relayer API URL")
	f.StringVar(&opts.privateKey, "key", os.Getenv("BRIDGE_PRIVATE_KEY"), "hex private key signing requests")
	f.StringVar(&opts.encryptedKey, "encrypted-key", "", "encrypted private key signing requests")
	f.StringVar(&opts.masterKey, "master-key", os.Getenv("BRIDGE_MASTER_KEY"), "base64 master key decrypting --encrypted-key")
	f.Int32Var(&opts.decimals, "decimals", 0, "token decimals amounts are given and shown in; 0 uses base units")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")

	root.AddCommand(
		newBridgesCmd(),
		newBridgeCmd(),
		newSwapCmd(),
		newRedeemCmd(),
		newEventsCmd(),
		newBalanceCmd(),
		newMintCmd(),
		newCapabilityCmd("grant"),
		newCapabilityCmd("revoke"),
		newSignCmd(),
		newClaimsCmd(),
		newRelaysCmd(),
		newKeysCmd(),
	)
	return root
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), opts.timeout)
}

// signingKey resolves the key given through --key or --encrypted-key.
func signingKey() (*ecdsa.PrivateKey, error) {
	if opts.privateKey == "" && opts.encryptedKey == "" {
		return nil, fmt.Errorf("this command requires --key or --encrypted-key")
	}
	return keys.Load(opts.privateKey, opts.encryptedKey, opts.masterKey)
}

func nodeClient(signed bool) (*client.Client, error) {
	if !signed {
		return client.New(opts.nodeURL), nil
	}
	key, err := signingKey()
	if err != nil {
		return nil, err
	}
	return client.New(opts.nodeURL, client.WithKey(key)), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
