package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/urfave/cli/v2"

	"github.com/solsend/solsend/service/events"
)

func eventsCommands() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Transfer receipt streaming commands",
		Subcommands: []*cli.Command{
			subscribeCommand(),
		},
	}
}

// subscribeCommand subscribes to transfer receipt events for a sender.
func subscribeCommand() *cli.Command {
	return &cli.Command{
		Name:      "subscribe",
		Usage:     "Subscribe to transfer receipt events for a sender",
		ArgsUsage: "SENDER_ADDRESS",
		Description: `Streams transfer receipts published to NATS JetStream.

Receipts are published to the subject: transfers.{sender_address}

Example:
  solsend events subscribe DYw8jCTfwHNRJhhmFcbXvVDTqWMEVFBX6ZKUmG5CNSKK --json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "durable",
				Aliases: []string{"d"},
				Usage:   "Create a durable consumer (survives restarts)",
			},
			&cli.StringFlag{
				Name:  "consumer-name",
				Usage: "Consumer name (required for durable)",
				Value: "solsend-cli",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("sender address is required")
			}

			address := c.Args().Get(0)
			natsURL := c.String("nats-url")
			if natsURL == "" {
				natsURL = "nats://localhost:4222"
			}

			return streamReceipts(c.Context, address, natsURL, c.Bool("durable"), c.String("consumer-name"), c.Bool("json"))
		},
	}
}

// streamReceipts connects to NATS and streams receipt events until the
// context is cancelled or an interrupt arrives.
func streamReceipts(ctx context.Context, address, natsURL string, durable bool, consumerName string, jsonOutput bool) error {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	subject := fmt.Sprintf("transfers.%s", address)

	if !jsonOutput {
		fmt.Printf("Subscribing to: %s\n", subject)
		fmt.Printf("  NATS: %s\n", natsURL)
		if durable {
			fmt.Printf("  Consumer: %s (durable)\n", consumerName)
		}
		fmt.Printf("\nWaiting for receipts... (Ctrl-C to exit)\n\n")
	}

	consumerConfig := jetstream.ConsumerConfig{
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	if durable {
		consumerConfig.Durable = consumerName
		consumerConfig.Name = consumerName
	}

	cons, err := js.CreateOrUpdateConsumer(ctx, events.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	consumeCtx, err := cons.Consume(func(msg jetstream.Msg) {
		var event events.ReceiptEvent
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing event: %v\n", err)
			msg.Ack()
			return
		}

		if jsonOutput {
			data, _ := json.Marshal(event)
			fmt.Println(string(data))
		} else {
			fmt.Printf("✓ Transfer receipt\n")
			fmt.Printf("  Signature: %s\n", event.Signature)
			fmt.Printf("  To:        %s\n", event.RecipientAddress)
			if event.Mint != "" {
				fmt.Printf("  Mint:      %s\n", event.Mint)
			}
			fmt.Printf("  Amount:    %d base units\n", event.Amount)
			fmt.Printf("  Network:   %s\n", event.Network)
			fmt.Printf("  Published: %s\n\n", event.PublishedAt.Format(time.RFC3339))
		}

		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	select {
	case <-sigChan:
	case <-ctx.Done():
	}
	if !jsonOutput {
		fmt.Println("\nShutting down...")
	}
	return nil
}
