package solana

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Mint account layout constants. The base mint struct is 82 bytes; for
// Token-2022 mints with extensions the account is padded to the token
// account length, followed by a one-byte account type discriminator and
// a TLV region.
const (
	mintAccountBaseLength = 82
	tokenAccountLength    = 165

	accountTypeMint = uint8(1)

	// TLV extension type for the token metadata extension
	extensionTokenMetadata = uint16(19)
)

// parseMintAccount decodes a mint account's data into AssetMetadata.
// Name and symbol come from the Token-2022 metadata extension and are
// only present for the extended variant; a mint without the extension
// degrades to nil name/symbol rather than an error.
func parseMintAccount(mint solana.PublicKey, variant ProgramVariant, data []byte) (*AssetMetadata, error) {
	if len(data) < mintAccountBaseLength {
		return nil, fmt.Errorf("mint account data too short: %d bytes", len(data))
	}

	var m token.Mint
	if err := bin.NewBinDecoder(data).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode mint account: %w", err)
	}
	if !m.IsInitialized {
		return nil, fmt.Errorf("mint account %s is not initialized", mint)
	}

	meta := &AssetMetadata{
		Mint:     mint,
		Variant:  variant,
		Decimals: m.Decimals,
	}

	if variant == VariantExtended {
		if name, symbol, ok := parseMetadataExtension(data); ok {
			meta.Name = &name
			meta.Symbol = &symbol
		}
	}

	return meta, nil
}

// parseMetadataExtension walks the Token-2022 TLV extension region
// looking for the token metadata extension. Each entry is a u16 type,
// u16 length, and payload, all little-endian. Returns ok=false when the
// mint carries no readable metadata extension.
func parseMetadataExtension(data []byte) (name, symbol string, ok bool) {
	// Extensions start after the padded base account plus the account
	// type discriminator.
	if len(data) <= tokenAccountLength+1 {
		return "", "", false
	}
	if data[tokenAccountLength] != accountTypeMint {
		return "", "", false
	}

	tlv := data[tokenAccountLength+1:]
	for len(tlv) >= 4 {
		extType := binary.LittleEndian.Uint16(tlv[0:2])
		extLen := int(binary.LittleEndian.Uint16(tlv[2:4]))
		if len(tlv) < 4+extLen {
			return "", "", false
		}
		if extType == extensionTokenMetadata {
			return parseTokenMetadataBody(tlv[4 : 4+extLen])
		}
		tlv = tlv[4+extLen:]
	}

	return "", "", false
}

// parseTokenMetadataBody decodes the metadata extension payload:
// update authority (32 bytes), mint (32 bytes), then borsh strings for
// name, symbol, and uri (u32 length prefix each). Only name and symbol
// are read here.
func parseTokenMetadataBody(body []byte) (name, symbol string, ok bool) {
	// Skip update_authority and mint.
	offset := 64
	name, offset, ok = readBorshString(body, offset)
	if !ok {
		return "", "", false
	}
	symbol, _, ok = readBorshString(body, offset)
	if !ok {
		return "", "", false
	}
	return name, symbol, true
}

// readBorshString reads a u32 length-prefixed UTF-8 string at offset.
func readBorshString(data []byte, offset int) (string, int, bool) {
	if len(data) < offset+4 {
		return "", 0, false
	}
	n := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4
	if n < 0 || len(data) < offset+n {
		return "", 0, false
	}
	s := data[offset : offset+n]
	if !utf8.Valid(s) {
		return "", 0, false
	}
	return string(s), offset + n, true
}
