package solana

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSigner_SignatureVerifies(t *testing.T) {
	ctx := context.Background()
	keyHex, pub := testKeypair(t, 0x05)

	message := []byte("the exact bytes the runtime expects")

	sigHex, err := LocalSigner{}.SignMessage(ctx, hex.EncodeToString(message), keyHex)
	require.NoError(t, err)

	raw, err := hex.DecodeString(sigHex)
	require.NoError(t, err)
	require.Len(t, raw, 64)

	sig := solana.SignatureFromBytes(raw)
	assert.True(t, sig.Verify(pub, message))
}

func TestLocalSigner_TamperedMessageFailsVerification(t *testing.T) {
	ctx := context.Background()
	keyHex, pub := testKeypair(t, 0x05)

	message := []byte("original message")
	sigHex, err := LocalSigner{}.SignMessage(ctx, hex.EncodeToString(message), keyHex)
	require.NoError(t, err)

	raw, err := hex.DecodeString(sigHex)
	require.NoError(t, err)
	sig := solana.SignatureFromBytes(raw)

	// Flipping any message byte must break verification.
	for i := range message {
		tampered := make([]byte, len(message))
		copy(tampered, message)
		tampered[i] ^= 0x01
		assert.False(t, sig.Verify(pub, tampered), "flipped byte %d still verified", i)
	}

	// As must flipping any signature byte.
	for i := range raw {
		tamperedSig := make([]byte, len(raw))
		copy(tamperedSig, raw)
		tamperedSig[i] ^= 0x01
		assert.False(t, solana.SignatureFromBytes(tamperedSig).Verify(pub, message), "flipped signature byte %d still verified", i)
	}
}

func TestLocalSigner_RejectsBadKey(t *testing.T) {
	_, err := LocalSigner{}.SignMessage(context.Background(), "00ff", "not-hex")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPrivateKey)
}

func TestAttachSignature(t *testing.T) {
	_, sender := testKeypair(t, 0x01)
	_, recipient := testKeypair(t, 0x02)

	ix := newSystemTransferInstruction(sender, recipient, 1)
	tx, err := AssembleTransaction([]solana.Instruction{ix}, sender, testBlockhash(), EncodingLegacy)
	require.NoError(t, err)

	var sig solana.Signature
	sig[0] = 0xAB

	require.NoError(t, AttachSignature(tx, sender, sig))
	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, sig, tx.Signatures[0])
}

func TestAttachSignature_SlotNotFound(t *testing.T) {
	_, sender := testKeypair(t, 0x01)
	_, recipient := testKeypair(t, 0x02)
	_, stranger := testKeypair(t, 0x03)

	ix := newSystemTransferInstruction(sender, recipient, 1)
	tx, err := AssembleTransaction([]solana.Instruction{ix}, sender, testBlockhash(), EncodingLegacy)
	require.NoError(t, err)

	err = AttachSignature(tx, stranger, solana.Signature{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSignerSlotNotFound)
}
