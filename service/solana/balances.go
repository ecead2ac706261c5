package solana

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Token account layout offsets (165-byte SPL token account).
const (
	tokenAccountMintOffset   = 0
	tokenAccountAmountOffset = 64
)

// GetNativeBalance returns the owner's lamport balance.
func (c *Client) GetNativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	start := time.Now()
	out, err := c.rpc.GetBalance(ctx, owner, c.commitment)
	c.recordRPC("GetBalance", err, start)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return out.Value, nil
}

// GetTokenBalances aggregates every token balance the owner holds under
// both token programs, then fetches metadata for each discovered mint
// concurrently. A failed metadata read degrades that one entry to a nil
// Metadata placeholder instead of failing the aggregate; this is the
// only place in the package where a partial failure is absorbed.
func (c *Client) GetTokenBalances(ctx context.Context, owner solana.PublicKey) ([]*TokenBalance, error) {
	var balances []*TokenBalance

	for _, programID := range []solana.PublicKey{TokenProgramID, Token2022ProgramID} {
		start := time.Now()
		out, err := c.rpc.GetTokenAccountsByOwner(ctx, owner,
			&rpc.GetTokenAccountsConfig{ProgramId: &programID},
			&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingBase64, Commitment: c.commitment},
		)
		c.recordRPC("GetTokenAccountsByOwner", err, start)
		if err != nil {
			return nil, fmt.Errorf("failed to get token accounts: %w", err)
		}

		for _, acct := range out.Value {
			data := acct.Account.Data.GetBinary()
			entry, err := parseTokenAccount(acct.Pubkey, data)
			if err != nil {
				c.logger.WarnContext(ctx, "skipping unparseable token account",
					"account", acct.Pubkey.String(),
					"error", err,
				)
				continue
			}
			balances = append(balances, entry)
		}
	}

	// Fetch per-mint metadata concurrently and join before returning.
	var wg sync.WaitGroup
	for _, entry := range balances {
		wg.Add(1)
		go func(entry *TokenBalance) {
			defer wg.Done()
			meta, err := c.FetchAssetMetadata(ctx, entry.Mint)
			if err != nil {
				// Degrade this one asset to an unknown placeholder.
				c.logger.WarnContext(ctx, "metadata read failed, degrading to placeholder",
					"mint", entry.Mint.String(),
					"error", err,
				)
				return
			}
			entry.Metadata = meta
		}(entry)
	}
	wg.Wait()

	c.logger.DebugContext(ctx, "aggregated token balances",
		"owner", owner.String(),
		"count", len(balances),
	)

	return balances, nil
}

// parseTokenAccount extracts mint and amount from a raw token account.
// Layout: mint (32 bytes), owner (32 bytes), amount (u64 LE), rest.
func parseTokenAccount(address solana.PublicKey, data []byte) (*TokenBalance, error) {
	if len(data) < tokenAccountAmountOffset+8 {
		return nil, fmt.Errorf("token account data too short: %d bytes", len(data))
	}
	mint := solana.PublicKeyFromBytes(data[tokenAccountMintOffset : tokenAccountMintOffset+32])
	amount := binary.LittleEndian.Uint64(data[tokenAccountAmountOffset : tokenAccountAmountOffset+8])
	return &TokenBalance{
		Mint:    mint,
		Account: address,
		Amount:  amount,
	}, nil
}
