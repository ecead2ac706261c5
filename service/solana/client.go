package solana

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/solsend/solsend/service/metrics"
)

// RPCClient is an interface for the Solana RPC operations we need.
// This allows us to mock the RPC layer in tests without hitting real
// Solana nodes.
type RPCClient interface {
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)

	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)

	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)

	GetTokenAccountsByOwner(
		ctx context.Context,
		owner solana.PublicKey,
		conf *rpc.GetTokenAccountsConfig,
		opts *rpc.GetTokenAccountsOpts,
	) (*rpc.GetTokenAccountsResult, error)

	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
}

// Client runs the transfer pipeline against one network endpoint.
// It wraps the RPC client and the external signer with domain-specific
// operations.
type Client struct {
	rpc        RPCClient
	signer     Signer
	logger     *slog.Logger
	metrics    *metrics.Metrics
	network    Network
	commitment rpc.CommitmentType
}

// NewClient creates a new Solana client for a given network. The
// network value labels metrics and receipts; it never affects address
// derivation. If m is nil, no metrics are recorded.
func NewClient(rpcClient RPCClient, signer Signer, network Network, m *metrics.Metrics, logger *slog.Logger) *Client {
	return &Client{
		rpc:        rpcClient,
		signer:     signer,
		logger:     logger,
		metrics:    m,
		network:    network,
		commitment: rpc.CommitmentConfirmed,
	}
}

// recordRPC records one RPC call's outcome and duration.
func (c *Client) recordRPC(method string, err error, start time.Time) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordRPCCall(method, status, string(c.network), time.Since(start).Seconds())
}

// Transfer runs one intent through the full pipeline:
// resolve accounts, build instructions, assemble, sign via the external
// bridge, verify locally, submit. Any failure aborts at that stage;
// nothing is retried, since retrying a signed transaction risks double
// submission.
func (c *Client) Transfer(ctx context.Context, intent TransferIntent, privateKeyHex string) (*TransferReceipt, error) {
	encoding := intent.Encoding
	if encoding == "" {
		encoding = EncodingLegacy
	}

	// Build (includes resolution and, for tokens, conditional
	// provisioning of the recipient's associated account).
	instructions, amount, err := c.BuildTransferInstructions(ctx, intent)
	if err != nil {
		return nil, err
	}

	// A fresh blockhash bounds the transaction's validity window.
	start := time.Now()
	bh, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	c.recordRPC("GetLatestBlockhash", err, start)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	tx, err := AssembleTransaction(instructions, intent.From, bh.Value.Blockhash, encoding)
	if err != nil {
		return nil, err
	}

	msg, err := MessageBytes(tx)
	if err != nil {
		return nil, err
	}

	sig, err := c.signMessageBytes(ctx, msg, privateKeyHex)
	if err != nil {
		return nil, err
	}
	if err := AttachSignature(tx, intent.From, sig); err != nil {
		return nil, err
	}

	if err := c.VerifyTransaction(tx, intent.From); err != nil {
		return nil, err
	}

	txID, err := c.SubmitTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	receipt := &TransferReceipt{
		Signature:        txID,
		Sender:           intent.From,
		Recipient:        intent.To,
		Mint:             intent.Mint,
		Amount:           amount,
		Network:          c.network,
		InstructionCount: len(instructions),
		SubmittedAt:      time.Now().UTC(),
	}

	c.logger.InfoContext(ctx, "transfer submitted",
		"signature", txID.String(),
		"sender", intent.From.String(),
		"recipient", intent.To.String(),
		"amount", amount,
		"network", string(c.network),
		"instruction_count", len(instructions),
	)

	return receipt, nil
}

// VerifyTransaction recomputes the signable message bytes and checks
// the attached signature against the fee payer's public key. Submission
// must not proceed when this fails; a failure here is an assembly or
// bridging defect, never a retryable condition.
func (c *Client) VerifyTransaction(tx *solana.Transaction, feePayer solana.PublicKey) error {
	msg, err := MessageBytes(tx)
	if err != nil {
		return err
	}

	signers := tx.Message.Signers()
	for i, key := range signers {
		if !key.Equals(feePayer) {
			continue
		}
		if i >= len(tx.Signatures) {
			break
		}
		if tx.Signatures[i].Verify(feePayer, msg) {
			if c.metrics != nil {
				c.metrics.RecordSignatureVerification("success")
			}
			return nil
		}
		break
	}

	if c.metrics != nil {
		c.metrics.RecordSignatureVerification("failure")
	}
	return fmt.Errorf("%w: fee payer %s", ErrSignatureVerificationFailed, feePayer)
}

// SubmitTransaction serializes the signed transaction and sends it.
// Structured node rejections are wrapped in ErrNetworkRejected with the
// node's reason preserved; transport failures propagate unchanged.
func (c *Client) SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	start := time.Now()
	txID, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	c.recordRPC("SendTransaction", err, start)

	if err != nil {
		var rpcErr *jsonrpc.RPCError
		if errors.As(err, &rpcErr) {
			if c.metrics != nil {
				c.metrics.RecordSubmission(string(c.network), "rejected")
			}
			return solana.Signature{}, fmt.Errorf("%w: %s (code %d)", ErrNetworkRejected, rpcErr.Message, rpcErr.Code)
		}
		if c.metrics != nil {
			c.metrics.RecordSubmission(string(c.network), "error")
		}
		return solana.Signature{}, err
	}

	if c.metrics != nil {
		c.metrics.RecordSubmission(string(c.network), "success")
	}
	return txID, nil
}
