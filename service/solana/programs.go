package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Well-known Solana program IDs
var (
	// SystemProgramID is the native SOL transfer program
	SystemProgramID = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")

	// TokenProgramID is the SPL Token program
	TokenProgramID = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

	// Token2022ProgramID is the Token Extensions program (Token-2022)
	Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

	// AssociatedTokenProgramID derives and creates associated token accounts
	AssociatedTokenProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
)

// System Program instruction types
const (
	SystemProgramTransferInstruction = uint32(2)
)

// Token Program instruction types
const (
	TokenProgramTransferInstruction        = uint8(3)
	TokenProgramTransferCheckedInstruction = uint8(12)
)

// ProgramVariant identifies which of the two incompatible token program
// implementations governs a mint. The variant is resolved once per asset
// from the mint account's owner and threaded through derivation,
// instruction building, and assembly.
type ProgramVariant int

const (
	// VariantLegacy is the original SPL Token program.
	VariantLegacy ProgramVariant = iota

	// VariantExtended is the Token-2022 (Token Extensions) program.
	VariantExtended
)

// ProgramID returns the on-chain program ID for the variant.
func (v ProgramVariant) ProgramID() solana.PublicKey {
	if v == VariantExtended {
		return Token2022ProgramID
	}
	return TokenProgramID
}

func (v ProgramVariant) String() string {
	if v == VariantExtended {
		return "token-2022"
	}
	return "token"
}

// VariantForProgram maps a mint account's owner program to a variant.
// Returns ErrUnknownAsset for any program that is not a token program.
func VariantForProgram(owner solana.PublicKey) (ProgramVariant, error) {
	switch {
	case owner.Equals(TokenProgramID):
		return VariantLegacy, nil
	case owner.Equals(Token2022ProgramID):
		return VariantExtended, nil
	default:
		return 0, fmt.Errorf("%w: account owned by unrecognized program %s", ErrUnknownAsset, owner)
	}
}
