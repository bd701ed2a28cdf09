package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/client"
)

func newBridgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bridges",
		Short: "List the bridges hosted by the node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			node, _ := nodeClient(false)
			out, err := node.Bridges(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func newBridgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bridge <bridge-id>",
		Short: "Show a bridge and its chain identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			node, _ := nodeClient(false)
			out, err := node.Bridge(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func newSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <bridge-id> <recipient> <amount>",
		Short: "Burn tokens on the source bridge for recipient on the other chain",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := bridge.ParseAddress("recipient", args[1])
			if err != nil {
				return err
			}
			amount, err := parseUnits(args[2], opts.decimals)
			if err != nil {
				return err
			}
			node, err := nodeClient(true)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()
			ev, err := node.Swap(ctx, args[0], recipient, amount)
			if err != nil {
				return err
			}
			return printJSON(cmd, ev)
		},
	}
}

func newRedeemCmd() *cobra.Command {
	var body bridge.RedeemBody
	cmd := &cobra.Command{
		Use:   "redeem <bridge-id> <nonce>",
		Short: "Redeem a signed claim on the destination bridge",
		Long: `Redeem a signed claim on the destination bridge. Without --signature the claim
is fetched from the validator; otherwise the claim fields are taken from the flags.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nonce, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid nonce %q", args[1])
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if body.Signature == "" {
				claim, err := client.New(opts.validatorURL).Claim(ctx, args[0], nonce)
				if err != nil {
					return fmt.Errorf("fetch claim: %w", err)
				}
				body = claim.RedeemBody()
			} else {
				amount, err := parseUnits(body.Amount, opts.decimals)
				if err != nil {
					return err
				}
				body.Amount = amount.String()
				body.Nonce = nonce
			}

			node, err := nodeClient(true)
			if err != nil {
				return err
			}
			ev, err := node.Redeem(ctx, args[0], body)
			if err != nil {
				return err
			}
			return printJSON(cmd, ev)
		},
	}
	f := cmd.Flags()
	f.StringVar(&body.Sender, "sender", "", "claim sender")
	f.StringVar(&body.Recipient, "recipient", "", "claim recipient")
	f.StringVar(&body.Amount, "amount", "", "claim amount")
	f.StringVar(&body.Signature, "signature", "", "65 byte validator signature as hex")
	cmd.MarkFlagsRequiredTogether("sender", "recipient", "amount", "signature")
	return cmd
}

func newEventsCmd() *cobra.Command {
	var filter bridge.EventFilter
	cmd := &cobra.Command{
		Use:       "events <bridge-id> <swaps|redeems>",
		Short:     "List the events recorded by a bridge",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"swaps", "redeems"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			node, _ := nodeClient(false)
			filter.BridgeID = args[0]

			switch args[1] {
			case "swaps":
				out, err := node.ListSwaps(ctx, filter)
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			case "redeems":
				out, err := node.ListRedeems(ctx, filter)
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			default:
				return fmt.Errorf("unknown event type %q", args[1])
			}
		},
	}
	cmd.Flags().Uint64Var(&filter.After, "after", 0, "only events with a greater sequence")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum number of events")
	return cmd
}

func newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <ledger-id> <account>",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := bridge.ParseAddress("account", args[1])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			node, _ := nodeClient(false)
			balance, err := node.Balance(ctx, args[0], account)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatUnits(balance, opts.decimals))
			return nil
		},
	}
}

func newMintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint <ledger-id> <account> <amount>",
		Short: "Mint tokens as the ledger admin",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := bridge.ParseAddress("account", args[1])
			if err != nil {
				return err
			}
			amount, err := parseUnits(args[2], opts.decimals)
			if err != nil {
				return err
			}
			node, err := nodeClient(true)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := node.Mint(ctx, args[0], account, amount)
			if err != nil {
				return err
			}
			out.Balance = formatBaseUnits(out.Balance, opts.decimals)
			return printJSON(cmd, out)
		},
	}
}

func newCapabilityCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <ledger-id> <account> <mint|burn|admin>",
		Short: "Change the capabilities of an account as the ledger admin",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := bridge.ParseAddress("account", args[1])
			if err != nil {
				return err
			}
			capability, err := bridge.ParseCapability(args[2])
			if err != nil {
				return err
			}
			node, err := nodeClient(true)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()
			if action == "grant" {
				err = node.Grant(ctx, args[0], account, capability)
			} else {
				err = node.Revoke(ctx, args[0], account, capability)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s: %s\n", action, capability, args[0], account.Hex())
			return nil
		},
	}
}
