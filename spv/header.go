package spv

import (
	"encoding/binary"
	"fmt"
)

const (
	// BlockHeaderSize is the size of a serialized Bitcoin block header in bytes.
	BlockHeaderSize = 80

	// HashSize is the size of a SHA256 hash in bytes.
	HashSize = 32
)

// BlockHeader represents a Bitcoin block header (80 bytes serialized).
// Hash fields are stored in internal byte order, exactly as they appear in
// the serialized header.
type BlockHeader struct {
	Version    int32  // 4 bytes, little-endian
	PrevBlock  []byte // 32 bytes
	MerkleRoot []byte // 32 bytes
	Timestamp  uint32 // 4 bytes, little-endian (Unix timestamp)
	Bits       uint32 // 4 bytes, little-endian (compact target)
	Nonce      uint32 // 4 bytes, little-endian
	Height     uint32 // Not in raw header; tracked separately
	Hash       []byte // Computed: double-SHA256 of 80-byte header
}

// SerializeHeader serializes a BlockHeader to 80 bytes in wire format.
//
// Layout: version(4) | prevBlock(32) | merkleRoot(32) | timestamp(4) | bits(4) | nonce(4)
func SerializeHeader(h *BlockHeader) []byte {
	if h == nil {
		return nil
	}

	buf := make([]byte, BlockHeaderSize)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock)
	copy(buf[36:68], h.MerkleRoot)
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)

	return buf
}

// DeserializeHeader deserializes exactly 80 bytes into a BlockHeader.
// The MerkleRoot field is taken directly from the header bytes; header
// storage already matches internal hashing order, so no reversal happens
// here. The Hash field is computed from the serialized data.
func DeserializeHeader(data []byte) (*BlockHeader, error) {
	if len(data) != BlockHeaderSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidHeader, BlockHeaderSize, len(data))
	}

	h := &BlockHeader{
		Version:    int32(binary.LittleEndian.Uint32(data[0:4])),
		PrevBlock:  make([]byte, HashSize),
		MerkleRoot: make([]byte, HashSize),
		Timestamp:  binary.LittleEndian.Uint32(data[68:72]),
		Bits:       binary.LittleEndian.Uint32(data[72:76]),
		Nonce:      binary.LittleEndian.Uint32(data[76:80]),
	}

	copy(h.PrevBlock, data[4:36])
	copy(h.MerkleRoot, data[36:68])

	// Compute header hash
	h.Hash = DoubleHash(data)

	return h, nil
}

// ComputeHeaderHash computes and returns the double-SHA256 hash of a block header.
func ComputeHeaderHash(h *BlockHeader) []byte {
	raw := SerializeHeader(h)
	if raw == nil {
		return nil
	}
	return DoubleHash(raw)
}

// BlockHashDisplay returns the block identifier in display order: the
// 64-hex-character reversed form of the header's double-SHA256 hash.
func BlockHashDisplay(h *BlockHeader) string {
	hash := h.Hash
	if len(hash) == 0 {
		hash = ComputeHeaderHash(h)
	}
	return DisplayHash(hash)
}

// CompactToTarget converts a Bitcoin "compact" (nBits) representation to a 32-byte
// big-endian target value. Format: 0xEEMMMMMM where EE=exponent, MMMMMM=mantissa.
func CompactToTarget(bits uint32) []byte {
	exponent := bits >> 24
	mantissa := bits & 0x007fffff
	// Negative flag (bit 23 of mantissa) is treated as a zero target.
	if bits&0x00800000 != 0 {
		mantissa = 0
	}

	target := make([]byte, 32)
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		target[31] = byte(mantissa)
		target[30] = byte(mantissa >> 8)
		target[29] = byte(mantissa >> 16)
	} else {
		pos := 32 - int(exponent)
		if pos >= 0 && pos < 32 {
			target[pos] = byte(mantissa >> 16)
		}
		if pos+1 >= 0 && pos+1 < 32 {
			target[pos+1] = byte(mantissa >> 8)
		}
		if pos+2 >= 0 && pos+2 < 32 {
			target[pos+2] = byte(mantissa)
		}
	}
	return target
}

// VerifyPoW checks that a block header's hash meets its stated difficulty
// target. The header hash (double-SHA256 output, read as a big-endian
// 256-bit integer in display order) must be numerically <= the target
// derived from Bits. This is an optional sanity check on supplied headers;
// it is not part of the Verify pipeline.
func VerifyPoW(h *BlockHeader) error {
	if h == nil {
		return fmt.Errorf("%w: header", ErrNilParam)
	}
	hash := h.Hash
	if len(hash) == 0 {
		hash = ComputeHeaderHash(h)
	}
	target := CompactToTarget(h.Bits)

	// The numeric value reads the hash as a little-endian integer, so
	// compare against the target in display order (MSB first).
	display := ReverseBytes(hash)
	for i := 0; i < HashSize; i++ {
		if display[i] < target[i] {
			return nil // hash < target → valid
		}
		if display[i] > target[i] {
			return fmt.Errorf("%w: hash exceeds target", ErrInsufficientPoW)
		}
	}
	return nil // hash == target → valid
}
