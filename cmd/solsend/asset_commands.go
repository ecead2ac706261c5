package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/solsend/solsend/service/solana"
)

func metadataCommand() *cli.Command {
	return &cli.Command{
		Name:      "metadata",
		Usage:     "Inspect a mint account's program variant, decimals, and metadata",
		ArgsUsage: "MINT_ADDRESS",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("mint address is required")
			}

			mint, err := solana.DecodeAddress(c.Args().Get(0))
			if err != nil {
				return err
			}

			client, network, err := newSolanaClient(c)
			if err != nil {
				return err
			}

			meta, err := client.FetchAssetMetadata(c.Context, mint)
			if err != nil {
				return err
			}

			result := map[string]interface{}{
				"mint":     mint.String(),
				"network":  string(network),
				"variant":  meta.Variant.String(),
				"decimals": meta.Decimals,
			}
			if meta.Name != nil {
				result["name"] = *meta.Name
			}
			if meta.Symbol != nil {
				result["symbol"] = *meta.Symbol
			}
			return printResult(c, result, func() {
				fmt.Printf("Mint %s (%s):\n", mint, network)
				fmt.Printf("  Variant:  %s\n", meta.Variant)
				fmt.Printf("  Decimals: %d\n", meta.Decimals)
				if meta.Name != nil {
					fmt.Printf("  Name:     %s\n", *meta.Name)
				}
				if meta.Symbol != nil {
					fmt.Printf("  Symbol:   %s\n", *meta.Symbol)
				}
			})
		},
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Derive the associated token account for an owner and mint",
		ArgsUsage: "OWNER_ADDRESS MINT_ADDRESS",
		Description: `Derives the associated token account address for an owner/mint pair.
The governing token program is resolved from the mint account on chain,
and the derived account's existence is checked.`,
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("owner and mint addresses are required")
			}

			owner, err := solana.DecodeAddress(c.Args().Get(0))
			if err != nil {
				return err
			}
			mint, err := solana.DecodeAddress(c.Args().Get(1))
			if err != nil {
				return err
			}

			client, network, err := newSolanaClient(c)
			if err != nil {
				return err
			}

			meta, err := client.FetchAssetMetadata(c.Context, mint)
			if err != nil {
				return err
			}

			ata, err := solana.DeriveAssociatedAddress(owner, mint, meta.Variant)
			if err != nil {
				return err
			}

			exists, err := client.AccountExists(c.Context, ata)
			if err != nil {
				return err
			}

			result := map[string]interface{}{
				"owner":              owner.String(),
				"mint":               mint.String(),
				"network":            string(network),
				"variant":            meta.Variant.String(),
				"associated_account": ata.String(),
				"exists":             exists,
			}
			return printResult(c, result, func() {
				fmt.Printf("Associated account for owner %s, mint %s:\n", owner, mint)
				fmt.Printf("  Address: %s\n", ata)
				fmt.Printf("  Variant: %s\n", meta.Variant)
				fmt.Printf("  Exists:  %v\n", exists)
			})
		},
	}
}
