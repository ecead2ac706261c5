package events

import (
	"time"

	"github.com/solsend/solsend/service/solana"
)

// ReceiptEvent represents a submitted transfer published to NATS.
// This is published to the subject "transfers.{sender_address}" in
// JetStream.
type ReceiptEvent struct {
	// Transaction identifiers
	Signature string `json:"signature"`

	// Participants
	SenderAddress    string `json:"sender_address"`
	RecipientAddress string `json:"recipient_address"`

	// Transfer details
	Mint             string `json:"mint,omitempty"` // empty for native SOL
	Amount           uint64 `json:"amount"`         // base units
	Network          string `json:"network"`
	InstructionCount int    `json:"instruction_count"`

	// Timing information
	SubmittedAt time.Time `json:"submitted_at"`
	PublishedAt time.Time `json:"published_at"`
}

// FromReceipt converts a transfer receipt to a ReceiptEvent for publishing.
func FromReceipt(r *solana.TransferReceipt) *ReceiptEvent {
	event := &ReceiptEvent{
		Signature:        r.Signature.String(),
		SenderAddress:    r.Sender.String(),
		RecipientAddress: r.Recipient.String(),
		Amount:           r.Amount,
		Network:          string(r.Network),
		InstructionCount: r.InstructionCount,
		SubmittedAt:      r.SubmittedAt,
		PublishedAt:      time.Now().UTC(),
	}
	if r.Mint != nil {
		event.Mint = r.Mint.String()
	}
	return event
}
