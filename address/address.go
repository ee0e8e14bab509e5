// Package address implements the two Bitcoin address encodings this engine
// recognizes, base58check (legacy P2PKH) and bech32 (segwit v0 P2WPKH), and
// resolves target address strings to their canonical 20-byte pay-to-hash
// payload for payment matching.
package address

import (
	"crypto/sha256"
	"strings"

	"golang.org/x/crypto/ripemd160"
)

// ResolveTarget resolves a target address string to its canonical 20-byte
// hash. Only bech32 strings (prefix bc1/tb1) resolve; for anything else,
// including a bech32-lookalike that fails to decode, ok is false and the
// caller should fall back to exact string comparison.
func ResolveTarget(addr string) (hash []byte, ok bool) {
	lower := strings.ToLower(addr)
	if !strings.HasPrefix(lower, HRPMainnet+"1") && !strings.HasPrefix(lower, HRPTestnet+"1") {
		return nil, false
	}
	hash, err := DecodeSegwit(addr)
	if err != nil {
		return nil, false
	}
	return hash, true
}

// Hash160 computes RIPEMD160(SHA256(data)), the Bitcoin pay-to-hash digest.
func Hash160(data []byte) []byte {
	sum := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

// FromPublicKey derives the legacy P2PKH address a serialized public key
// (33-byte compressed or 65-byte uncompressed) pays to.
func FromPublicKey(pubKey []byte) (string, error) {
	if len(pubKey) != 33 && len(pubKey) != 65 {
		return "", ErrInvalidPublicKey
	}
	return EncodeBase58Check(VersionP2PKH, Hash160(pubKey)), nil
}
