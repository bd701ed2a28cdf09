package main

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainsafe/burnmint-bridge/pkg/keys"
)

type keyOutput struct {
	Address      string `json:"address"`
	PrivateKey   string `json:"private_key,omitempty"`
	EncryptedKey string `json:"encrypted_key,omitempty"`
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate and protect secp256k1 keys",
	}
	cmd.AddCommand(newKeysGenerateCmd(), newKeysEncryptCmd(), newKeysDeriveCmd(), newKeysMasterCmd())
	return cmd
}

// describeKey prints the key encrypted when a master key is configured, in hex otherwise.
func describeKey(cmd *cobra.Command, key *ecdsa.PrivateKey) error {
	out := keyOutput{Address: keys.Address(key).Hex()}
	if opts.masterKey == "" {
		out.PrivateKey = keys.ToHex(key)
		return printJSON(cmd, out)
	}
	master, err := keys.MasterKeyFromBase64(opts.masterKey)
	if err != nil {
		return err
	}
	if out.EncryptedKey, err = keys.Encrypt(key, master); err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func newKeysGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a new key, encrypted with --master-key when given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := keys.Generate()
			if err != nil {
				return err
			}
			return describeKey(cmd, key)
		},
	}
}

func newKeysEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt the --key private key with --master-key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.masterKey == "" {
				return fmt.Errorf("--master-key is required")
			}
			key, err := keys.FromHex(opts.privateKey)
			if err != nil {
				return err
			}
			return describeKey(cmd, key)
		},
	}
}

func newKeysDeriveCmd() *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "derive <label>",
		Short: "Derive a key from --seed and a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keys.Derive([]byte(seed), args[0])
			if err != nil {
				return err
			}
			return describeKey(cmd, key)
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "seed of at least 32 bytes")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func newKeysMasterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "master",
		Short: "Generate a base64 master key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			master, err := keys.GenerateMasterKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), keys.MasterKeyToBase64(master))
			return nil
		},
	}
}
