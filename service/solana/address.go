package solana

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// DecodeAddress parses a base58 account identifier into a public key.
// Returns ErrMalformedAddress unless the decoded form is exactly 32 bytes.
func DecodeAddress(s string) (solana.PublicKey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrMalformedAddress, err)
	}
	if len(raw) != solana.PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("%w: decoded to %d bytes, want %d", ErrMalformedAddress, len(raw), solana.PublicKeyLength)
	}
	return solana.PublicKeyFromBytes(raw), nil
}

// EncodeAddress renders raw account bytes as base58. No checksum,
// standard base58 alphabet.
func EncodeAddress(raw [32]byte) string {
	return base58.Encode(raw[:])
}

// ParsePrivateKeyHex converts a hex-encoded 32-byte Ed25519 scalar into
// a full keypair. The scalar is key material: callers must not log or
// persist it, and it crosses no boundary other than the signer bridge.
func ParsePrivateKeyHex(s string) (solana.PrivateKey, error) {
	seed, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPrivateKey, err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedPrivateKey, len(seed), ed25519.SeedSize)
	}
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// DerivePublicKey returns the address corresponding to a hex-encoded
// 32-byte private scalar.
func DerivePublicKey(privateKeyHex string) (solana.PublicKey, error) {
	key, err := ParsePrivateKeyHex(privateKeyHex)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key.PublicKey(), nil
}
