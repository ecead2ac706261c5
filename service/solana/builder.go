package solana

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

// ToBaseUnits converts a decimal amount in external units to the
// chain's integer base units: round(amount * 10^decimals).
func ToBaseUnits(amount string, decimals uint8) (uint64, error) {
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	// ParseFloat accepts "NaN", which slips past every ordering check
	// below and converts to an unspecified uint64.
	if math.IsNaN(f) {
		return 0, fmt.Errorf("invalid amount %q", amount)
	}
	if f <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %q", amount)
	}
	scaled := math.Round(f * math.Pow10(int(decimals)))
	// Exactly 2^64 is representable as a float and must be rejected too.
	if math.IsInf(scaled, 0) || scaled >= 1<<64 {
		return 0, fmt.Errorf("amount %q overflows base units", amount)
	}
	return uint64(scaled), nil
}

// BuildTransferInstructions turns a transfer intent into the ordered
// instruction list the runtime expects. For token transfers the
// recipient's associated account is provisioned first when missing, so
// the creation instruction always precedes the transfer instruction.
// Returns the instructions and the resolved base-unit amount.
func (c *Client) BuildTransferInstructions(ctx context.Context, intent TransferIntent) ([]solana.Instruction, uint64, error) {
	if intent.Mint == nil {
		return c.buildNativeTransfer(ctx, intent)
	}
	return c.buildTokenTransfer(ctx, intent)
}

// buildNativeTransfer moves lamports directly between wallet accounts.
// No associated-account indirection applies to native SOL.
func (c *Client) buildNativeTransfer(ctx context.Context, intent TransferIntent) ([]solana.Instruction, uint64, error) {
	lamports, err := ToBaseUnits(intent.Amount, 9) // 1 SOL = 10^9 lamports
	if err != nil {
		return nil, 0, err
	}

	ix := newSystemTransferInstruction(intent.From, intent.To, lamports)

	c.logger.DebugContext(ctx, "built native transfer instruction",
		"from", intent.From.String(),
		"to", intent.To.String(),
		"lamports", lamports,
	)
	if c.metrics != nil {
		c.metrics.RecordTransferBuilt("native")
	}

	return []solana.Instruction{ix}, lamports, nil
}

// buildTokenTransfer resolves the governing program variant and both
// associated accounts, then emits (optionally) an account-creation
// instruction followed by a transfer-checked instruction.
func (c *Client) buildTokenTransfer(ctx context.Context, intent TransferIntent) ([]solana.Instruction, uint64, error) {
	mint := *intent.Mint

	meta, err := c.FetchAssetMetadata(ctx, mint)
	if err != nil {
		return nil, 0, err
	}

	senderATA, err := DeriveAssociatedAddress(intent.From, mint, meta.Variant)
	if err != nil {
		return nil, 0, err
	}
	recipientATA, err := DeriveAssociatedAddress(intent.To, mint, meta.Variant)
	if err != nil {
		return nil, 0, err
	}

	senderExists, err := c.AccountExists(ctx, senderATA)
	if err != nil {
		return nil, 0, err
	}
	if !senderExists {
		return nil, 0, fmt.Errorf("%w: %s has no account for mint %s", ErrSenderHasNoAccount, intent.From, mint)
	}

	amount, err := ToBaseUnits(intent.Amount, meta.Decimals)
	if err != nil {
		return nil, 0, err
	}

	var instructions []solana.Instruction

	recipientExists, err := c.AccountExists(ctx, recipientATA)
	if err != nil {
		return nil, 0, err
	}
	if !recipientExists {
		c.logger.InfoContext(ctx, "recipient token account missing, provisioning",
			"recipient", intent.To.String(),
			"mint", mint.String(),
			"account", recipientATA.String(),
		)
		instructions = append(instructions, newCreateAssociatedAccountInstruction(
			intent.From, recipientATA, intent.To, mint, meta.Variant,
		))
	}

	instructions = append(instructions, newTransferCheckedInstruction(
		senderATA, mint, recipientATA, intent.From, amount, meta.Decimals, meta.Variant,
	))

	c.logger.DebugContext(ctx, "built token transfer instructions",
		"from", intent.From.String(),
		"to", intent.To.String(),
		"mint", mint.String(),
		"variant", meta.Variant.String(),
		"amount", amount,
		"decimals", meta.Decimals,
		"instruction_count", len(instructions),
	)
	if c.metrics != nil {
		c.metrics.RecordTransferBuilt(meta.Variant.String())
	}

	return instructions, amount, nil
}

// newSystemTransferInstruction encodes a System Program Transfer:
// u32 instruction type followed by u64 lamports, little-endian.
func newSystemTransferInstruction(from, to solana.PublicKey, lamports uint64) solana.Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], SystemProgramTransferInstruction)
	binary.LittleEndian.PutUint64(data[4:12], lamports)

	return solana.NewInstruction(
		SystemProgramID,
		solana.AccountMetaSlice{
			solana.Meta(from).WRITE().SIGNER(),
			solana.Meta(to).WRITE(),
		},
		data,
	)
}

// newCreateAssociatedAccountInstruction encodes an associated token
// account Create. The funding payer is the sender; the recipient is the
// eventual owner. Account order is fixed by the program:
// [payer, ata, owner, mint, system program, token program].
func newCreateAssociatedAccountInstruction(payer, ata, owner, mint solana.PublicKey, variant ProgramVariant) solana.Instruction {
	return solana.NewInstruction(
		AssociatedTokenProgramID,
		solana.AccountMetaSlice{
			solana.Meta(payer).WRITE().SIGNER(),
			solana.Meta(ata).WRITE(),
			solana.Meta(owner),
			solana.Meta(mint),
			solana.Meta(SystemProgramID),
			solana.Meta(variant.ProgramID()),
		},
		[]byte{},
	)
}

// newTransferCheckedInstruction encodes a TransferChecked under the
// resolved token program: u8 instruction type, u64 amount
// little-endian, u8 decimals. The decimals byte is the runtime's
// consistency check against the mint. Account order:
// [source, mint, destination, authority].
func newTransferCheckedInstruction(source, mint, destination, authority solana.PublicKey, amount uint64, decimals uint8, variant ProgramVariant) solana.Instruction {
	data := make([]byte, 10)
	data[0] = TokenProgramTransferCheckedInstruction
	binary.LittleEndian.PutUint64(data[1:9], amount)
	data[9] = decimals

	return solana.NewInstruction(
		variant.ProgramID(),
		solana.AccountMetaSlice{
			solana.Meta(source).WRITE(),
			solana.Meta(mint),
			solana.Meta(destination).WRITE(),
			solana.Meta(authority).SIGNER(),
		},
		data,
	)
}
