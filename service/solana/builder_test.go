package solana

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		want     uint64
	}{
		{"one and a half tokens at 6 decimals", "1.5", 6, 1_500_000},
		{"smallest unit at 6 decimals", "0.000001", 6, 1},
		{"whole number", "10", 6, 10_000_000},
		{"sol to lamports", "0.01", 9, 10_000_000},
		{"one sol", "1", 9, 1_000_000_000},
		{"zero decimals", "42", 0, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBaseUnits_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"empty", ""},
		{"not a number", "abc"},
		{"zero", "0"},
		{"negative", "-1.5"},
		{"nan", "NaN"},
		{"nan lowercase", "nan"},
		{"positive infinity", "+Inf"},
		{"infinity word", "Infinity"},
		{"exactly 2^64", "18446744073709551616"},
		{"huge exponent", "1e300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToBaseUnits(tt.amount, 6)
			require.Error(t, err)
		})
	}
}

// The scaled value can land exactly on 2^64, which a strict > bound
// against MaxUint64 lets through because the constant rounds up when
// converted to float64.
func TestToBaseUnits_OverflowBoundary(t *testing.T) {
	_, err := ToBaseUnits("18446744073709551616", 0) // 2^64
	require.Error(t, err)

	_, err = ToBaseUnits("18446744073709551617", 0)
	require.Error(t, err)

	// The largest float64 below 2^64 still converts.
	got, err := ToBaseUnits("18446744073709549568", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709549568), got)
}

func TestBuildTransferInstructions_OrderingWithProvisioning(t *testing.T) {
	ctx := context.Background()

	_, sender := testKeypair(t, 0x01)
	_, recipient := testKeypair(t, 0x02)
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	senderATA, err := DeriveAssociatedAddress(sender, mint, VariantLegacy)
	require.NoError(t, err)

	mock := &mockRPCClient{
		accounts: map[string]*rpc.GetAccountInfoResult{
			mint.String():      accountInfoResult(TokenProgramID, legacyMintData(6)),
			senderATA.String(): accountInfoResult(TokenProgramID, tokenAccountData(mint, sender, 5_000_000)),
		},
	}
	client := newTestClient(mock)

	instructions, amount, err := client.BuildTransferInstructions(ctx, TransferIntent{
		From:   sender,
		To:     recipient,
		Mint:   &mint,
		Amount: "2.5",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(2_500_000), amount)
	require.Len(t, instructions, 2)

	// Provisioning strictly precedes the transfer.
	assert.True(t, instructions[0].ProgramID().Equals(AssociatedTokenProgramID))
	assert.True(t, instructions[1].ProgramID().Equals(TokenProgramID))

	// The creation instruction names the sender as the funding payer and
	// the recipient as the eventual owner.
	createAccounts := instructions[0].Accounts()
	require.GreaterOrEqual(t, len(createAccounts), 4)
	assert.True(t, createAccounts[0].PublicKey.Equals(sender))
	assert.True(t, createAccounts[0].IsSigner)
	assert.True(t, createAccounts[2].PublicKey.Equals(recipient))
}

func TestBuildTransferInstructions_NoProvisioningWhenRecipientExists(t *testing.T) {
	ctx := context.Background()

	_, sender := testKeypair(t, 0x01)
	_, recipient := testKeypair(t, 0x02)
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	senderATA, err := DeriveAssociatedAddress(sender, mint, VariantLegacy)
	require.NoError(t, err)
	recipientATA, err := DeriveAssociatedAddress(recipient, mint, VariantLegacy)
	require.NoError(t, err)

	mock := &mockRPCClient{
		accounts: map[string]*rpc.GetAccountInfoResult{
			mint.String():         accountInfoResult(TokenProgramID, legacyMintData(6)),
			senderATA.String():    accountInfoResult(TokenProgramID, tokenAccountData(mint, sender, 5_000_000)),
			recipientATA.String(): accountInfoResult(TokenProgramID, tokenAccountData(mint, recipient, 0)),
		},
	}
	client := newTestClient(mock)

	instructions, _, err := client.BuildTransferInstructions(ctx, TransferIntent{
		From:   sender,
		To:     recipient,
		Mint:   &mint,
		Amount: "1",
	})

	require.NoError(t, err)
	require.Len(t, instructions, 1)
	assert.True(t, instructions[0].ProgramID().Equals(TokenProgramID))
}

// An extended-variant mint must produce instructions under the
// Token-2022 program, including the provisioning instruction's token
// program reference.
func TestBuildTransferInstructions_ExtendedVariant(t *testing.T) {
	ctx := context.Background()

	_, sender := testKeypair(t, 0x01)
	_, recipient := testKeypair(t, 0x02)
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	senderATA, err := DeriveAssociatedAddress(sender, mint, VariantExtended)
	require.NoError(t, err)

	mock := &mockRPCClient{
		accounts: map[string]*rpc.GetAccountInfoResult{
			mint.String():      accountInfoResult(Token2022ProgramID, legacyMintData(9)),
			senderATA.String(): accountInfoResult(Token2022ProgramID, tokenAccountData(mint, sender, 5_000_000_000)),
		},
	}
	client := newTestClient(mock)

	instructions, amount, err := client.BuildTransferInstructions(ctx, TransferIntent{
		From:   sender,
		To:     recipient,
		Mint:   &mint,
		Amount: "1.25",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(1_250_000_000), amount)
	require.Len(t, instructions, 2)
	assert.True(t, instructions[1].ProgramID().Equals(Token2022ProgramID))

	// The create instruction references the extended token program too;
	// mixing variants within one transaction would be rejected on chain.
	createAccounts := instructions[0].Accounts()
	last := createAccounts[len(createAccounts)-1]
	assert.True(t, last.PublicKey.Equals(Token2022ProgramID))
}

func TestBuildTransferInstructions_NativeHasNoAccountLogic(t *testing.T) {
	ctx := context.Background()

	_, sender := testKeypair(t, 0x01)
	_, recipient := testKeypair(t, 0x02)

	// Empty account map: any associated-account lookup would error the
	// test by returning not-found for the sender.
	client := newTestClient(&mockRPCClient{accounts: map[string]*rpc.GetAccountInfoResult{}})

	instructions, lamports, err := client.BuildTransferInstructions(ctx, TransferIntent{
		From:   sender,
		To:     recipient,
		Amount: "0.01",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), lamports)
	require.Len(t, instructions, 1)
	assert.True(t, instructions[0].ProgramID().Equals(SystemProgramID))
}
