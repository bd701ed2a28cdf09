package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
	"github.com/chainsafe/burnmint-bridge/pkg/client"
	"github.com/chainsafe/burnmint-bridge/pkg/db"
)

type signOutput struct {
	Signer    string `json:"signer"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
	V         uint8  `json:"v"`
	R         string `json:"r"`
	S         string `json:"s"`
}

func newSignCmd() *cobra.Command {
	var (
		sender, recipient, amount, destination string
		nonce, chainIDFrom, chainIDTo          uint64
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a redemption claim with a validator key",
		Long: `Sign a redemption claim with the validator key given through --key. With
--bridge the chain identifiers are read from the destination bridge on the node.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := signingKey()
			if err != nil {
				return err
			}
			claim := &bridge.Claim{Nonce: nonce, ChainIDFrom: chainIDFrom, ChainIDTo: chainIDTo}
			if claim.Sender, err = bridge.ParseAddress("sender", sender); err != nil {
				return err
			}
			if claim.Recipient, err = bridge.ParseAddress("recipient", recipient); err != nil {
				return err
			}
			if claim.Amount, err = parseUnits(amount, opts.decimals); err != nil {
				return err
			}

			if destination != "" {
				ctx, cancel := commandContext(cmd)
				defer cancel()
				info, err := client.New(opts.nodeURL).Bridge(ctx, destination)
				if err != nil {
					return err
				}
				claim.ChainIDFrom, claim.ChainIDTo = info.ChainIDFrom, info.ChainIDTo
			}
			if claim.ChainIDFrom == 0 || claim.ChainIDTo == 0 {
				return fmt.Errorf("chain ids are required: pass --bridge or --chain-id-from and --chain-id-to")
			}

			signer := bridge.NewSigner(key)
			hash, sig, err := signer.SignClaim(claim)
			if err != nil {
				return err
			}
			return printJSON(cmd, signOutput{
				Signer:    signer.Address().Hex(),
				Hash:      hash.Hex(),
				Signature: sig.Hex(),
				V:         sig.V,
				R:         sig.R.Hex(),
				S:         sig.S.Hex(),
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&sender, "sender", "", "account that swapped")
	f.StringVar(&recipient, "recipient", "", "account receiving the tokens")
	f.StringVar(&amount, "amount", "", "amount swapped")
	f.Uint64Var(&nonce, "nonce", 0, "claim nonce")
	f.Uint64Var(&chainIDFrom, "chain-id-from", 0, "source chain id")
	f.Uint64Var(&chainIDTo, "chain-id-to", 0, "destination chain id")
	f.StringVar(&destination, "bridge", "", "destination bridge to read chain ids from")
	_ = cmd.MarkFlagRequired("sender")
	_ = cmd.MarkFlagRequired("recipient")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("nonce")
	return cmd
}

func newClaimsCmd() *cobra.Command {
	var (
		q      bridge.ClaimQuery
		status string
	)
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "List the claims signed by the validator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status != "" {
				st, err := bridge.ParseClaimStatus(status)
				if err != nil {
					return err
				}
				q.Status = st
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := client.New(opts.validatorURL).Claims(ctx, q)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&q.Recipient, "recipient", "", "only claims for this recipient")
	f.StringVar(&q.DestinationBridge, "bridge", "", "only claims redeemable on this bridge")
	f.StringVar(&status, "status", "", "pending or redeemed")
	f.IntVar(&q.Limit, "limit", 0, "maximum number of claims")
	return cmd
}

func newRelaysCmd() *cobra.Command {
	var (
		status string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "relays",
		Short: "List the relay records of the relayer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var st db.RelayStatus
			if status != "" {
				var err error
				if st, err = db.ParseRelayStatus(status); err != nil {
					return err
				}
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := client.New(opts.relayerURL).Relays(ctx, st, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "pending, completed or failed")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of relays")
	return cmd
}
