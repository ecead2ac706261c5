package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:  "solsend",
		Usage: "Solana transfer construction and signing CLI",
		Description: `A command-line tool for deriving addresses, querying balances, and
building, signing, and submitting SOL and SPL token transfers.

The private key is supplied as a hex-encoded 32-byte Ed25519 scalar and
never leaves the local process except through the signer boundary.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			addressCommand(),
			balanceCommand(),
			tokensCommand(),
			metadataCommand(),
			resolveCommand(),
			sendCommand(),
			eventsCommands(),
		},
		// Global flags available to all commands
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "network",
				Aliases: []string{"n"},
				Usage:   "Target network: \"main\" or \"development\"",
				EnvVars: []string{"SOLSEND_NETWORK"},
				Value:   "development",
			},
			&cli.StringFlag{
				Name:    "main-rpc-url",
				Usage:   "RPC endpoint for the main network",
				EnvVars: []string{"SOLANA_MAIN_RPC_URL"},
				Value:   "https://api.mainnet-beta.solana.com",
			},
			&cli.StringFlag{
				Name:    "development-rpc-url",
				Usage:   "RPC endpoint for the development network",
				EnvVars: []string{"SOLANA_DEVELOPMENT_RPC_URL"},
				Value:   "https://api.devnet.solana.com",
			},
			&cli.StringFlag{
				Name:    "nats-url",
				Usage:   "NATS server URL for receipt events (optional)",
				EnvVars: []string{"NATS_URL"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn, error",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output in JSON format",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "jq expression applied to JSON output",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
