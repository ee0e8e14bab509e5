package spv

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DoubleHash computes SHA256(SHA256(data)), matching Bitcoin's hash function.
func DoubleHash(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// ReverseBytes returns a reversed copy of b. The input is not modified.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// ParseDisplayHash decodes a hash given in display order (the reversed hex
// form shown by explorers and RPC APIs) into the internal byte order used by
// all hashing arithmetic. The input must be exactly 64 hex characters.
func ParseDisplayHash(s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	if len(raw) != HashSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrHashLength, HashSize, len(raw))
	}
	return ReverseBytes(raw), nil
}

// DisplayHash converts a hash from internal byte order to the display hex
// form (reversed, lowercase, 64 characters for a 32-byte hash).
func DisplayHash(internal []byte) string {
	return hex.EncodeToString(ReverseBytes(internal))
}
