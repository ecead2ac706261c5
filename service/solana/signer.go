package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Signer is the external signing collaborator. Message bytes and the
// private scalar cross this boundary as lowercase hex; the signature
// comes back the same way. The implementation is treated as a
// deterministic, side-effect-free black box, so no retry or timeout
// wrapping is layered on top of it.
type Signer interface {
	SignMessage(ctx context.Context, messageHex, privateKeyHex string) (signatureHex string, err error)
}

// LocalSigner implements Signer in-process with crypto/ed25519. It
// honors the same hex interchange contract as an out-of-process signer
// so the pipeline cannot tell the difference.
type LocalSigner struct{}

func (LocalSigner) SignMessage(_ context.Context, messageHex, privateKeyHex string) (string, error) {
	key, err := ParsePrivateKeyHex(privateKeyHex)
	if err != nil {
		return "", err
	}
	msg, err := hex.DecodeString(messageHex)
	if err != nil {
		return "", fmt.Errorf("invalid message hex: %w", err)
	}
	sig, err := key.Sign(msg)
	if err != nil {
		return "", fmt.Errorf("signing failed: %w", err)
	}
	return hex.EncodeToString(sig[:]), nil
}

// signMessageBytes bridges the assembled message to the external
// signer: encode to hex, invoke, decode the 64-byte signature back.
func (c *Client) signMessageBytes(ctx context.Context, msg []byte, privateKeyHex string) (solana.Signature, error) {
	sigHex, err := c.signer.SignMessage(ctx, hex.EncodeToString(msg), privateKeyHex)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("external signer failed: %w", err)
	}
	raw, err := hex.DecodeString(sigHex)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("external signer returned invalid hex: %w", err)
	}
	if len(raw) != ed25519.SignatureSize {
		return solana.Signature{}, fmt.Errorf("external signer returned %d bytes, want %d", len(raw), ed25519.SignatureSize)
	}
	return solana.SignatureFromBytes(raw), nil
}

// AttachSignature places a signature into the signer slot matching the
// fee payer's public key. Returns ErrSignerSlotNotFound if the fee
// payer is not a required signer of the message, which can only happen
// through an assembly defect.
func AttachSignature(tx *solana.Transaction, feePayer solana.PublicKey, sig solana.Signature) error {
	signers := tx.Message.Signers()
	slot := -1
	for i, key := range signers {
		if key.Equals(feePayer) {
			slot = i
			break
		}
	}
	if slot < 0 {
		return fmt.Errorf("%w: %s", ErrSignerSlotNotFound, feePayer)
	}

	if len(tx.Signatures) != len(signers) {
		tx.Signatures = make([]solana.Signature, len(signers))
	}
	tx.Signatures[slot] = sig
	return nil
}
