package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/solsend/solsend/service/solana"
)

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "balance",
		Usage:     "Show the native SOL balance for an address",
		ArgsUsage: "ADDRESS",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("address is required")
			}

			address, err := solana.DecodeAddress(c.Args().Get(0))
			if err != nil {
				return err
			}

			client, network, err := newSolanaClient(c)
			if err != nil {
				return err
			}

			lamports, err := client.GetNativeBalance(c.Context, address)
			if err != nil {
				return err
			}

			result := map[string]interface{}{
				"address":  address.String(),
				"network":  string(network),
				"lamports": lamports,
				"sol":      float64(lamports) / 1e9,
			}
			return printResult(c, result, func() {
				fmt.Printf("Balance for %s (%s):\n", address, network)
				fmt.Printf("  %d lamports (%.9f SOL)\n", lamports, float64(lamports)/1e9)
			})
		},
	}
}

func tokensCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "List all token balances for an address",
		ArgsUsage: "ADDRESS",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("address is required")
			}

			address, err := solana.DecodeAddress(c.Args().Get(0))
			if err != nil {
				return err
			}

			client, network, err := newSolanaClient(c)
			if err != nil {
				return err
			}

			balances, err := client.GetTokenBalances(c.Context, address)
			if err != nil {
				return err
			}

			type tokenRow struct {
				Mint     string  `json:"mint"`
				Account  string  `json:"account"`
				Amount   uint64  `json:"amount"`
				Decimals *uint8  `json:"decimals,omitempty"`
				Variant  string  `json:"variant,omitempty"`
				Name     *string `json:"name,omitempty"`
				Symbol   *string `json:"symbol,omitempty"`
			}

			rows := make([]tokenRow, 0, len(balances))
			for _, b := range balances {
				row := tokenRow{
					Mint:    b.Mint.String(),
					Account: b.Account.String(),
					Amount:  b.Amount,
				}
				if b.Metadata != nil {
					d := b.Metadata.Decimals
					row.Decimals = &d
					row.Variant = b.Metadata.Variant.String()
					row.Name = b.Metadata.Name
					row.Symbol = b.Metadata.Symbol
				}
				rows = append(rows, row)
			}

			result := map[string]interface{}{
				"address": address.String(),
				"network": string(network),
				"tokens":  rows,
			}
			return printResult(c, result, func() {
				fmt.Printf("Token balances for %s (%s):\n", address, network)
				if len(rows) == 0 {
					fmt.Println("  (none)")
					return
				}
				for _, row := range rows {
					label := row.Mint
					if row.Symbol != nil && *row.Symbol != "" {
						label = fmt.Sprintf("%s (%s)", *row.Symbol, row.Mint)
					}
					if row.Decimals != nil {
						fmt.Printf("  %s: %d base units (decimals=%d, %s)\n", label, row.Amount, *row.Decimals, row.Variant)
					} else {
						fmt.Printf("  %s: %d base units (metadata unavailable)\n", label, row.Amount)
					}
				}
			})
		},
	}
}
