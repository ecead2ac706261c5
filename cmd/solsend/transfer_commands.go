package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/solsend/solsend/service/events"
	"github.com/solsend/solsend/service/solana"
)

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "Build, sign, and submit a transfer",
		Description: `Sends native SOL, or an SPL token when --mint is given. The recipient's
associated token account is created automatically (funded by the sender)
if it does not exist yet.

Examples:
  solsend send --to 7x... --amount 0.01 --key <hex>
  solsend send --to 7x... --mint EPj... --amount 2.5 --key <hex>`,
		Flags: []cli.Flag{
			keyFlag(),
			&cli.StringFlag{
				Name:     "to",
				Usage:    "Recipient address (base58)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "mint",
				Usage: "Token mint address; omit to send native SOL",
			},
			&cli.StringFlag{
				Name:     "amount",
				Usage:    "Amount in external units (e.g. 2.5)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Transaction encoding: \"legacy\" or \"versioned\"",
				Value: "legacy",
			},
		},
		Action: func(c *cli.Context) error {
			keyHex := c.String("key")
			if keyHex == "" {
				return fmt.Errorf("private key is required (--key or SOLSEND_PRIVATE_KEY)")
			}

			from, err := solana.DerivePublicKey(keyHex)
			if err != nil {
				return err
			}
			to, err := solana.DecodeAddress(c.String("to"))
			if err != nil {
				return err
			}

			var encoding solana.EncodingKind
			switch c.String("encoding") {
			case "legacy":
				encoding = solana.EncodingLegacy
			case "versioned":
				encoding = solana.EncodingVersioned
			default:
				return fmt.Errorf("unknown encoding %q", c.String("encoding"))
			}

			client, network, err := newSolanaClient(c)
			if err != nil {
				return err
			}

			intent := solana.TransferIntent{
				From:     from,
				To:       to,
				Amount:   c.String("amount"),
				Network:  network,
				Encoding: encoding,
			}
			if mintStr := c.String("mint"); mintStr != "" {
				m, err := solana.DecodeAddress(mintStr)
				if err != nil {
					return err
				}
				intent.Mint = &m
			}

			receipt, err := client.Transfer(c.Context, intent, keyHex)
			if err != nil {
				return err
			}

			// Publish the receipt when a NATS endpoint is configured.
			if natsURL := c.String("nats-url"); natsURL != "" {
				publisher, err := events.NewPublisher(natsURL, newMetrics(), newLogger(c))
				if err != nil {
					return fmt.Errorf("transfer submitted (%s) but publisher setup failed: %w", receipt.Signature, err)
				}
				defer publisher.Close()
				if err := publisher.PublishReceipt(c.Context, events.FromReceipt(receipt)); err != nil {
					return fmt.Errorf("transfer submitted (%s) but receipt publish failed: %w", receipt.Signature, err)
				}
			}

			result := events.FromReceipt(receipt)
			return printResult(c, result, func() {
				fmt.Printf("✓ Transfer submitted\n")
				fmt.Printf("  Signature:    %s\n", receipt.Signature)
				fmt.Printf("  From:         %s\n", receipt.Sender)
				fmt.Printf("  To:           %s\n", receipt.Recipient)
				if receipt.Mint != nil {
					fmt.Printf("  Mint:         %s\n", receipt.Mint)
				}
				fmt.Printf("  Amount:       %d base units\n", receipt.Amount)
				fmt.Printf("  Network:      %s\n", receipt.Network)
				fmt.Printf("  Instructions: %d\n", receipt.InstructionCount)
			})
		},
	}
}
