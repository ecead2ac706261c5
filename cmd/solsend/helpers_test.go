package main

import (
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/solsend/solsend/service/solana"
)

func testCLIContext(t *testing.T) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("network", "development", "")
	set.String("main-rpc-url", "https://api.mainnet-beta.solana.com", "")
	set.String("development-rpc-url", "https://api.devnet.solana.com", "")
	set.String("log-level", "error", "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestNewSolanaClient(t *testing.T) {
	client, network, err := newSolanaClient(testCLIContext(t))

	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, solana.NetworkDevelopment, network)
}

// Building a second client in the same process must reuse the shared
// collectors instead of re-registering them, which would panic.
func TestNewSolanaClient_RepeatedConstruction(t *testing.T) {
	c := testCLIContext(t)

	_, _, err := newSolanaClient(c)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, _, err := newSolanaClient(c)
		assert.NoError(t, err)
	})
}

func TestNewMetrics_SharedInstance(t *testing.T) {
	assert.Same(t, newMetrics(), newMetrics())
}

func TestSelectedNetwork_Invalid(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("network", "testnet", "")
	c := cli.NewContext(cli.NewApp(), set, nil)

	_, err := selectedNetwork(c)
	require.Error(t, err)
}

func TestStreamReceipts_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := streamReceipts(ctx, "DYw8jCTfwHNRJhhmFcbXvVDTqWMEVFBX6ZKUmG5CNSKK",
		"nats://127.0.0.1:1", false, "solsend-cli", true)
	require.Error(t, err)
}
