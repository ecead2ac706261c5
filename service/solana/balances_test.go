package solana

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenAccountResult builds an RPC token account entry through JSON,
// same as accountInfoResult.
func tokenAccountResult(pubkey, owner solana.PublicKey, data []byte) *rpc.TokenAccount {
	payload := map[string]interface{}{
		"pubkey": pubkey.String(),
		"account": map[string]interface{}{
			"lamports":   2039280,
			"owner":      owner.String(),
			"data":       []interface{}{base64.StdEncoding.EncodeToString(data), "base64"},
			"executable": false,
			"rentEpoch":  0,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	var out rpc.TokenAccount
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

func TestGetNativeBalance(t *testing.T) {
	ctx := context.Background()
	_, owner := testKeypair(t, 0x01)

	mock := &mockRPCClient{balance: 5_000_000_000}
	client := newTestClient(mock)

	lamports, err := client.GetNativeBalance(ctx, owner)

	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000_000), lamports)
}

// Holdings under both token programs appear in a single aggregate, each
// enriched with its mint's metadata.
func TestGetTokenBalances_AggregatesBothPrograms(t *testing.T) {
	ctx := context.Background()

	_, owner := testKeypair(t, 0x01)
	_, legacyMint := testKeypair(t, 0x03)
	_, extendedMint := testKeypair(t, 0x04)
	_, legacyAcct := testKeypair(t, 0x05)
	_, extendedAcct := testKeypair(t, 0x06)

	mock := &mockRPCClient{
		accounts: map[string]*rpc.GetAccountInfoResult{
			legacyMint.String():   accountInfoResult(TokenProgramID, legacyMintData(6)),
			extendedMint.String(): accountInfoResult(Token2022ProgramID, extendedMintData(9, "Example Token", "EXM")),
		},
		tokenAccounts: map[string][]*rpc.TokenAccount{
			TokenProgramID.String(): {
				tokenAccountResult(legacyAcct, TokenProgramID, tokenAccountData(legacyMint, owner, 123_000)),
			},
			Token2022ProgramID.String(): {
				tokenAccountResult(extendedAcct, Token2022ProgramID, tokenAccountData(extendedMint, owner, 456_000)),
			},
		},
	}
	client := newTestClient(mock)

	balances, err := client.GetTokenBalances(ctx, owner)

	require.NoError(t, err)
	require.Len(t, balances, 2)

	byMint := map[string]*TokenBalance{}
	for _, b := range balances {
		byMint[b.Mint.String()] = b
	}

	legacy := byMint[legacyMint.String()]
	require.NotNil(t, legacy)
	assert.Equal(t, uint64(123_000), legacy.Amount)
	assert.Equal(t, legacyAcct, legacy.Account)
	require.NotNil(t, legacy.Metadata)
	assert.Equal(t, VariantLegacy, legacy.Metadata.Variant)
	assert.Equal(t, uint8(6), legacy.Metadata.Decimals)
	assert.Nil(t, legacy.Metadata.Name)

	extended := byMint[extendedMint.String()]
	require.NotNil(t, extended)
	assert.Equal(t, uint64(456_000), extended.Amount)
	require.NotNil(t, extended.Metadata)
	assert.Equal(t, VariantExtended, extended.Metadata.Variant)
	require.NotNil(t, extended.Metadata.Name)
	assert.Equal(t, "Example Token", *extended.Metadata.Name)
	require.NotNil(t, extended.Metadata.Symbol)
	assert.Equal(t, "EXM", *extended.Metadata.Symbol)
}

// A mint whose metadata cannot be read degrades that one entry to a nil
// Metadata placeholder; the aggregate still succeeds.
func TestGetTokenBalances_MetadataDegradation(t *testing.T) {
	ctx := context.Background()

	_, owner := testKeypair(t, 0x01)
	_, knownMint := testKeypair(t, 0x03)
	_, orphanMint := testKeypair(t, 0x04)
	_, knownAcct := testKeypair(t, 0x05)
	_, orphanAcct := testKeypair(t, 0x06)

	mock := &mockRPCClient{
		accounts: map[string]*rpc.GetAccountInfoResult{
			knownMint.String(): accountInfoResult(TokenProgramID, legacyMintData(6)),
			// orphanMint account intentionally absent
		},
		tokenAccounts: map[string][]*rpc.TokenAccount{
			TokenProgramID.String(): {
				tokenAccountResult(knownAcct, TokenProgramID, tokenAccountData(knownMint, owner, 100)),
				tokenAccountResult(orphanAcct, TokenProgramID, tokenAccountData(orphanMint, owner, 200)),
			},
		},
	}
	client := newTestClient(mock)

	balances, err := client.GetTokenBalances(ctx, owner)

	require.NoError(t, err)
	require.Len(t, balances, 2)

	for _, b := range balances {
		switch b.Mint {
		case knownMint:
			assert.NotNil(t, b.Metadata)
		case orphanMint:
			assert.Equal(t, uint64(200), b.Amount)
			assert.Nil(t, b.Metadata)
		default:
			t.Fatalf("unexpected mint %s", b.Mint)
		}
	}
}

// Unparseable token accounts are skipped rather than failing the call.
func TestGetTokenBalances_SkipsUnparseable(t *testing.T) {
	ctx := context.Background()

	_, owner := testKeypair(t, 0x01)
	_, mint := testKeypair(t, 0x03)
	_, goodAcct := testKeypair(t, 0x05)
	_, badAcct := testKeypair(t, 0x06)

	mock := &mockRPCClient{
		accounts: map[string]*rpc.GetAccountInfoResult{
			mint.String(): accountInfoResult(TokenProgramID, legacyMintData(6)),
		},
		tokenAccounts: map[string][]*rpc.TokenAccount{
			TokenProgramID.String(): {
				tokenAccountResult(goodAcct, TokenProgramID, tokenAccountData(mint, owner, 100)),
				tokenAccountResult(badAcct, TokenProgramID, []byte{0x01, 0x02}),
			},
		},
	}
	client := newTestClient(mock)

	balances, err := client.GetTokenBalances(ctx, owner)

	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, mint, balances[0].Mint)
}

func TestParseTokenAccount(t *testing.T) {
	_, owner := testKeypair(t, 0x01)
	_, mint := testKeypair(t, 0x03)
	_, addr := testKeypair(t, 0x05)

	entry, err := parseTokenAccount(addr, tokenAccountData(mint, owner, 42))

	require.NoError(t, err)
	assert.Equal(t, mint, entry.Mint)
	assert.Equal(t, addr, entry.Account)
	assert.Equal(t, uint64(42), entry.Amount)

	_, err = parseTokenAccount(addr, make([]byte, 40))
	require.Error(t, err)
}
