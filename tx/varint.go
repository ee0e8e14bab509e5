package tx

import (
	"encoding/binary"
	"fmt"
)

// ReadVarint decodes a Bitcoin compact-size integer starting at offset.
// Returns the value and the number of bytes consumed.
//
// Encoding: a first byte below 0xfd is the value itself; 0xfd, 0xfe and
// 0xff prefix a little-endian uint16, uint32 and uint64 respectively.
func ReadVarint(buf []byte, offset int) (uint64, int, error) {
	if offset >= len(buf) {
		return 0, 0, fmt.Errorf("%w: varint prefix at offset %d", ErrTruncated, offset)
	}

	prefix := buf[offset]
	var width int
	switch {
	case prefix < 0xfd:
		return uint64(prefix), 1, nil
	case prefix == 0xfd:
		width = 2
	case prefix == 0xfe:
		width = 4
	default:
		width = 8
	}

	if offset+1+width > len(buf) {
		return 0, 0, fmt.Errorf("%w: varint needs %d bytes at offset %d, %d remain",
			ErrTruncated, width, offset+1, len(buf)-offset-1)
	}

	switch width {
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf[offset+1:])), 3, nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf[offset+1:])), 5, nil
	default:
		return binary.LittleEndian.Uint64(buf[offset+1:]), 9, nil
	}
}

// VarintSize returns the encoded size in bytes of v as a compact-size integer.
func VarintSize(v uint64) int {
	switch {
	case v < 0xfd:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// AppendVarint appends the compact-size encoding of v to dst.
func AppendVarint(dst []byte, v uint64) []byte {
	switch {
	case v < 0xfd:
		return append(dst, byte(v))
	case v <= 0xffff:
		dst = append(dst, 0xfd)
		return binary.LittleEndian.AppendUint16(dst, uint16(v))
	case v <= 0xffffffff:
		dst = append(dst, 0xfe)
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	default:
		dst = append(dst, 0xff)
		return binary.LittleEndian.AppendUint64(dst, v)
	}
}
