package solana

import "errors"

// Sentinel errors for the transfer pipeline. Callers match these with
// errors.Is; everything else (transport failures, malformed RPC
// responses) propagates unchanged.
var (
	// ErrMalformedAddress indicates a base58 string that does not decode
	// to exactly 32 bytes.
	ErrMalformedAddress = errors.New("malformed address")

	// ErrMalformedPrivateKey indicates key material that is not a
	// 32-byte hex-encoded Ed25519 scalar.
	ErrMalformedPrivateKey = errors.New("malformed private key")

	// ErrUnknownAsset indicates the mint account is missing or owned by
	// a program that is not a recognized token program.
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrSenderHasNoAccount indicates the sender has no associated token
	// account for the asset being transferred.
	ErrSenderHasNoAccount = errors.New("sender has no token account for asset")

	// ErrSignerSlotNotFound indicates the fee payer is not among the
	// required signers of the assembled message. This is a programming
	// error in assembly, not a runtime condition.
	ErrSignerSlotNotFound = errors.New("fee payer is not a signer of the message")

	// ErrSignatureVerificationFailed indicates the attached signature
	// does not verify against the serialized message and the fee payer's
	// public key. Submission is withheld when this occurs.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrNetworkRejected indicates the node refused the submitted
	// transaction (stale blockhash, insufficient balance, program error).
	// The node's structured reason is wrapped, never masked.
	ErrNetworkRejected = errors.New("transaction rejected by network")
)
