package address

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// VersionP2PKH is the base58check version byte for mainnet P2PKH addresses.
const VersionP2PKH byte = 0x00

// EncodeBase58Check encodes a versioned payload as a base58check string:
// base58(version || payload || first4(DoubleHash(version || payload))).
func EncodeBase58Check(version byte, hash []byte) string {
	return base58.CheckEncode(hash, version)
}

// DecodeBase58Check decodes a base58check string into its version byte and
// payload. A corrupted checksum or malformed string is ErrDecode.
func DecodeBase58Check(addr string) (byte, []byte, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return version, payload, nil
}
