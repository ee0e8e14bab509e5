package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// --- base58check tests ---

func TestBase58Check_RoundTrip(t *testing.T) {
	tests := []struct {
		hash string
		addr string
	}{
		{"72d52e2f5b88174c35ee29844cce0d6d24b921ef", "1BUBQuPV3gEV7P2XLNuAJQjf5t265Yyj9t"},
		{"c15b731d0116ef8192f240d4397a8cdbce5fe8bc", "1JdNy4KCNVQ6ay8qsc52DW1TtS7ZCnvJ5W"},
		{"c7ee32e6945d7de5a4541dd2580927128c115174", "1KE8pX7V7D8b4Cd5DL1jZwjy2vS5NtZpBT"},
		// Leading zero bytes in the hash shorten the encoded string.
		{"0a59837ccd4df25adc31cdad39be6a8d97557ed6", "1wizSAYSbuyXbt9d8JV8ytm5acqq2TorC"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			hash := mustHex(t, tt.hash)
			assert.Equal(t, tt.addr, EncodeBase58Check(VersionP2PKH, hash))

			version, payload, err := DecodeBase58Check(tt.addr)
			require.NoError(t, err)
			assert.Equal(t, VersionP2PKH, version)
			assert.Equal(t, hash, payload)
		})
	}
}

func TestDecodeBase58Check_Invalid(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{"corrupted checksum", "1BUBQuPV3gEV7P2XLNuAJQjf5t265Yyj9u"},
		{"corrupted body", "1BUBQuPV3gEW7P2XLNuAJQjf5t265Yyj9t"},
		{"not base58", "0OIl"},
		{"empty", ""},
		{"too short", "1a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeBase58Check(tt.addr)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

// --- bech32 tests ---

func TestSegwit_RoundTrip(t *testing.T) {
	tests := []struct {
		hrp  string
		hash string
		addr string
	}{
		{HRPMainnet, "72d52e2f5b88174c35ee29844cce0d6d24b921ef", "bc1qwt2jut6m3qt5cd0w9xzyensdd5jtjg00pgkw34"},
		{HRPMainnet, "c15b731d0116ef8192f240d4397a8cdbce5fe8bc", "bc1qc9dhx8gpzmhcryhjgr2rj75vm089l69uefmr7p"},
		{HRPMainnet, "751e76e8199196d454941c45d1b3a323f1433bd6", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"},
		{HRPTestnet, "72d52e2f5b88174c35ee29844cce0d6d24b921ef", "tb1qwt2jut6m3qt5cd0w9xzyensdd5jtjg00twda2x"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			hash := mustHex(t, tt.hash)

			addr, err := EncodeSegwit(tt.hrp, hash)
			require.NoError(t, err)
			assert.Equal(t, tt.addr, addr)

			got, err := DecodeSegwit(tt.addr)
			require.NoError(t, err)
			assert.Equal(t, hash, got)
		})
	}
}

func TestDecodeSegwit_Invalid(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{"witness version 1", "bc1pw508d6qejxtdg4y5r3zarvary0c5xw7k8e76x7"},
		{"unsupported prefix", "foo1qw508d6qejxtdg4y5r3zarvary0c5xw7ku6ewqk"},
		{"19 byte program", "bc1qw508d6qejxtdg4y5r3zarvary0c5xwck8mzle"},
		{"bad checksum", "bc1qwt2jut6m3qt5cd0w9xzyensdd5jtjg00pgkw35"},
		{"no separator", "bcqwt2jut6m3qt5cd0w9xzyensdd5jtjg00pgkw34"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSegwit(tt.addr)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestEncodeSegwit_WrongHashLength(t *testing.T) {
	_, err := EncodeSegwit(HRPMainnet, make([]byte, 19))
	assert.ErrorIs(t, err, ErrInvalidHashLength)

	_, err = EncodeSegwit(HRPMainnet, make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidHashLength)
}

// --- ResolveTarget tests ---

func TestResolveTarget(t *testing.T) {
	hash, ok := ResolveTarget("bc1qwt2jut6m3qt5cd0w9xzyensdd5jtjg00pgkw34")
	require.True(t, ok)
	assert.Equal(t, mustHex(t, "72d52e2f5b88174c35ee29844cce0d6d24b921ef"), hash)

	hash, ok = ResolveTarget("tb1qwt2jut6m3qt5cd0w9xzyensdd5jtjg00twda2x")
	require.True(t, ok)
	assert.Equal(t, mustHex(t, "72d52e2f5b88174c35ee29844cce0d6d24b921ef"), hash)
}

func TestResolveTarget_Fallback(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{"base58 address", "1BUBQuPV3gEV7P2XLNuAJQjf5t265Yyj9t"},
		{"malformed bc1 string", "bc1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq"},
		{"empty", ""},
		{"arbitrary text", "not-an-address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, ok := ResolveTarget(tt.addr)
			assert.False(t, ok)
			assert.Nil(t, hash)
		})
	}
}

// --- key hashing tests ---

func TestHash160(t *testing.T) {
	// secp256k1 generator point, compressed.
	pubKey := mustHex(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	assert.Equal(t, mustHex(t, "751e76e8199196d454941c45d1b3a323f1433bd6"), Hash160(pubKey))
}

func TestFromPublicKey(t *testing.T) {
	pubKey := mustHex(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")

	addr, err := FromPublicKey(pubKey)
	require.NoError(t, err)
	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", addr)
}

func TestFromPublicKey_InvalidLength(t *testing.T) {
	for _, n := range []int{0, 32, 34, 64, 66} {
		_, err := FromPublicKey(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidPublicKey, "length %d", n)
	}
}
