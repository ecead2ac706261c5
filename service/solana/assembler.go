package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// AssembleTransaction packages instructions, a fee payer, and a recent
// blockhash into an unsigned transaction in the requested encoding.
// Assembly is deterministic: identical inputs serialize identically on
// every call. The versioned encoding carries an empty address lookup
// table list; compaction is supported by the format but not used here.
func AssembleTransaction(
	instructions []solana.Instruction,
	feePayer solana.PublicKey,
	blockhash solana.Hash,
	kind EncodingKind,
) (*solana.Transaction, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("cannot assemble a transaction with no instructions")
	}

	tx, err := solana.NewTransaction(
		instructions,
		blockhash,
		solana.TransactionPayer(feePayer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble transaction: %w", err)
	}

	if kind == EncodingVersioned {
		tx.Message.SetVersion(solana.MessageVersionV0)
	}

	return tx, nil
}

// MessageBytes returns the exact byte sequence that must be signed.
func MessageBytes(tx *solana.Transaction) ([]byte, error) {
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %w", err)
	}
	return msg, nil
}
