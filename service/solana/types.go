package solana

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// Network selects which cluster endpoint RPC calls target. Selection
// never affects address derivation, only transport.
type Network string

const (
	NetworkMain        Network = "main"
	NetworkDevelopment Network = "development"
)

// EncodingKind selects the transaction wire encoding.
type EncodingKind string

const (
	// EncodingLegacy is the flat pre-versioning message format.
	EncodingLegacy EncodingKind = "legacy"

	// EncodingVersioned is the v0 compiled message format. Address
	// lookup tables are supported by the format but not used here; the
	// table list is always empty.
	EncodingVersioned EncodingKind = "versioned"
)

// AssetMetadata describes a mint account as read from the chain.
// Name and Symbol are only retrievable for the extended variant;
// absence is represented by nil, not inferred from empty strings.
type AssetMetadata struct {
	Mint     solana.PublicKey
	Variant  ProgramVariant
	Decimals uint8
	Name     *string
	Symbol   *string
}

// TransferIntent is the user's request to move an asset. It is created
// per user action, traverses the pipeline once, and is discarded.
type TransferIntent struct {
	From     solana.PublicKey
	To       solana.PublicKey
	Mint     *solana.PublicKey // nil = native SOL
	Amount   string            // decimal, external units
	Network  Network
	Encoding EncodingKind
}

// TransferReceipt is the terminal success result of a transfer flow.
type TransferReceipt struct {
	Signature        solana.Signature
	Sender           solana.PublicKey
	Recipient        solana.PublicKey
	Mint             *solana.PublicKey // nil for native SOL
	Amount           uint64            // base units
	Network          Network
	InstructionCount int
	SubmittedAt      time.Time
}

// TokenBalance is one entry of the balance aggregation read path.
// Metadata degrades to an unknown placeholder when the per-mint
// metadata read fails; the aggregate itself never fails on one asset.
type TokenBalance struct {
	Mint     solana.PublicKey
	Account  solana.PublicKey // the associated token account holding the balance
	Amount   uint64           // base units
	Metadata *AssetMetadata   // nil if the metadata read failed
}
