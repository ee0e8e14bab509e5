package address

import "errors"

var (
	// ErrDecode indicates an address string failed to decode: wrong
	// human-readable prefix, unsupported witness version, bad checksum,
	// or wrong payload length.
	ErrDecode = errors.New("address: decode failed")

	// ErrInvalidHashLength indicates a pay-to-hash payload is not 20 bytes.
	ErrInvalidHashLength = errors.New("address: hash must be 20 bytes")

	// ErrInvalidPublicKey indicates a public key is neither 33 (compressed)
	// nor 65 (uncompressed) bytes.
	ErrInvalidPublicKey = errors.New("address: invalid public key length")
)
