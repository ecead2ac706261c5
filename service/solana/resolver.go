package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// DeriveAssociatedAddress computes the associated token account address
// for an owner/mint pair under the given program variant. This is a pure
// derivation over the program-defined seed scheme; it implies nothing
// about whether the account exists on chain.
func DeriveAssociatedAddress(owner, mint solana.PublicKey, variant ProgramVariant) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{
			owner.Bytes(),
			variant.ProgramID().Bytes(),
			mint.Bytes(),
		},
		AssociatedTokenProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive associated address: %w", err)
	}
	return addr, nil
}

// AccountExists reports whether an account is present on chain.
// "Account not found" is a negative answer, not an error.
func (c *Client) AccountExists(ctx context.Context, address solana.PublicKey) (bool, error) {
	out, err := c.getAccountInfo(ctx, address)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return out != nil && out.Value != nil, nil
}

// FetchAssetMetadata reads a mint account and resolves which token
// program governs it, its decimals, and (extended variant only) any
// on-chain name/symbol metadata. Returns ErrUnknownAsset if the account
// is missing or not owned by a recognized token program.
func (c *Client) FetchAssetMetadata(ctx context.Context, mint solana.PublicKey) (*AssetMetadata, error) {
	out, err := c.getAccountInfo(ctx, mint)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: mint account %s does not exist", ErrUnknownAsset, mint)
		}
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("%w: mint account %s does not exist", ErrUnknownAsset, mint)
	}

	variant, err := VariantForProgram(out.Value.Owner)
	if err != nil {
		return nil, err
	}

	data := out.Value.Data.GetBinary()
	meta, err := parseMintAccount(mint, variant, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAsset, err)
	}

	c.logger.DebugContext(ctx, "resolved asset metadata",
		"mint", mint.String(),
		"variant", variant.String(),
		"decimals", meta.Decimals,
	)

	return meta, nil
}

// getAccountInfo issues the RPC read with the same metrics
// instrumentation every other call in this package gets.
func (c *Client) getAccountInfo(ctx context.Context, address solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	start := time.Now()
	out, err := c.rpc.GetAccountInfo(ctx, address)
	c.recordRPC("GetAccountInfo", err, start)
	return out, err
}
