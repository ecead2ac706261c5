package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/solsend/solsend/service/solana"
)

// keyFlag supplies the hex-encoded 32-byte Ed25519 scalar. The value is
// only ever handed to the signer bridge; it is never logged or echoed.
func keyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "Hex-encoded 32-byte Ed25519 private scalar",
		EnvVars: []string{"SOLSEND_PRIVATE_KEY"},
	}
}

func addressCommand() *cli.Command {
	return &cli.Command{
		Name:  "address",
		Usage: "Derive the account address for a private key",
		Flags: []cli.Flag{keyFlag()},
		Action: func(c *cli.Context) error {
			keyHex := c.String("key")
			if keyHex == "" {
				return fmt.Errorf("private key is required (--key or SOLSEND_PRIVATE_KEY)")
			}

			pub, err := solana.DerivePublicKey(keyHex)
			if err != nil {
				return err
			}

			result := map[string]string{"address": pub.String()}
			return printResult(c, result, func() {
				fmt.Printf("Address: %s\n", pub.String())
			})
		},
	}
}
