package address

import (
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
)

const (
	// HRPMainnet is the bech32 human-readable part for mainnet addresses.
	HRPMainnet = "bc"

	// HRPTestnet is the bech32 human-readable part for testnet addresses.
	HRPTestnet = "tb"

	// witnessV0 is the only witness version this engine recognizes.
	witnessV0 = 0

	// hashSize is the witness program length for P2WPKH.
	hashSize = 20
)

// DecodeSegwit decodes a segwit v0 address into its 20-byte pay-to-hash
// payload. The human-readable part must be "bc" or "tb", the checksum must
// be the Bech32 (not Bech32m) variant, the witness version must be 0, and
// the 5-bit payload must regroup to exactly 20 bytes with no padding bits
// set. Every failure is ErrDecode with context.
func DecodeSegwit(addr string) ([]byte, error) {
	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if hrp != HRPMainnet && hrp != HRPTestnet {
		return nil, fmt.Errorf("%w: unsupported prefix %q", ErrDecode, hrp)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data part", ErrDecode)
	}
	if data[0] != witnessV0 {
		return nil, fmt.Errorf("%w: witness version %d not supported", ErrDecode, data[0])
	}

	hash, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(hash) != hashSize {
		return nil, fmt.Errorf("%w: witness program must be %d bytes, got %d", ErrDecode, hashSize, len(hash))
	}
	return hash, nil
}

// EncodeSegwit encodes a 20-byte pay-to-hash payload as a segwit v0 address
// under the given human-readable part: the payload is regrouped from 8-bit
// to 5-bit symbols (zero-padded), prefixed with the witness-version symbol,
// and Bech32-checksummed.
func EncodeSegwit(hrp string, hash []byte) (string, error) {
	if len(hash) != hashSize {
		return "", fmt.Errorf("%w: got %d", ErrInvalidHashLength, len(hash))
	}

	grouped, err := bech32.ConvertBits(hash, 8, 5, true)
	if err != nil {
		return "", err
	}

	data := make([]byte, 0, len(grouped)+1)
	data = append(data, witnessV0)
	data = append(data, grouped...)
	return bech32.Encode(hrp, data)
}
