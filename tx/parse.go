package tx

import (
	"encoding/binary"
	"fmt"

	"github.com/bitproof-org/libspv-go/address"
)

const (
	versionSize  = 4
	outpointSize = 36
	sequenceSize = 4
	valueSize    = 8

	p2pkhScriptSize  = 25
	p2wpkhScriptSize = 22
)

// Output is a single transaction output recovered from the wire format.
type Output struct {
	// Value is the output amount in satoshis.
	Value uint64

	// Script is the raw locking script.
	Script []byte

	// Address is the recognized address string for P2PKH and P2WPKH
	// scripts. Empty when the script shape is not recognized.
	Address string

	// AddressHash is the 20-byte pay-to-hash payload for recognized
	// scripts, nil otherwise.
	AddressHash []byte
}

// ParseOutputs walks a raw transaction's wire bytes and extracts its outputs
// in serialized order. Input contents are skipped, never inspected. Any read
// past the end of the buffer aborts the whole parse with ErrTruncated; no
// partial output list is returned.
//
// Segwit encoding is detected by the marker/flag byte pair 0x00 0x01
// immediately after the version field. This is a byte-pattern heuristic, not
// an authoritative flag: a legacy transaction whose serialization happens to
// start with those bytes (zero inputs) would be misread.
func ParseOutputs(raw []byte) ([]Output, error) {
	cursor := 0

	// Version field, skipped unconditionally.
	if len(raw) < versionSize {
		return nil, fmt.Errorf("%w: version needs %d bytes, have %d", ErrTruncated, versionSize, len(raw))
	}
	cursor += versionSize

	// Segwit marker + flag.
	if cursor+2 <= len(raw) && raw[cursor] == 0x00 && raw[cursor+1] == 0x01 {
		cursor += 2
	}

	inputCount, n, err := ReadVarint(raw, cursor)
	if err != nil {
		return nil, fmt.Errorf("input count: %w", err)
	}
	cursor += n

	for i := uint64(0); i < inputCount; i++ {
		// Outpoint (txid + vout index).
		if err := need(raw, cursor, outpointSize, "input outpoint"); err != nil {
			return nil, err
		}
		cursor += outpointSize

		scriptLen, n, err := ReadVarint(raw, cursor)
		if err != nil {
			return nil, fmt.Errorf("input script length: %w", err)
		}
		cursor += n

		if scriptLen > uint64(len(raw)-cursor) {
			return nil, fmt.Errorf("%w: input script needs %d bytes, %d remain",
				ErrTruncated, scriptLen, len(raw)-cursor)
		}
		cursor += int(scriptLen)

		if err := need(raw, cursor, sequenceSize, "input sequence"); err != nil {
			return nil, err
		}
		cursor += sequenceSize
	}

	outputCount, n, err := ReadVarint(raw, cursor)
	if err != nil {
		return nil, fmt.Errorf("output count: %w", err)
	}
	cursor += n

	var outputs []Output
	for i := uint64(0); i < outputCount; i++ {
		if err := need(raw, cursor, valueSize, "output value"); err != nil {
			return nil, err
		}
		value := binary.LittleEndian.Uint64(raw[cursor:])
		cursor += valueSize

		scriptLen, n, err := ReadVarint(raw, cursor)
		if err != nil {
			return nil, fmt.Errorf("output script length: %w", err)
		}
		cursor += n

		if scriptLen > uint64(len(raw)-cursor) {
			return nil, fmt.Errorf("%w: output script needs %d bytes, %d remain",
				ErrTruncated, scriptLen, len(raw)-cursor)
		}
		script := make([]byte, scriptLen)
		copy(script, raw[cursor:cursor+int(scriptLen)])
		cursor += int(scriptLen)

		out := Output{Value: value, Script: script}
		classifyScript(&out)
		outputs = append(outputs, out)
	}

	return outputs, nil
}

// need checks that n bytes remain at offset.
func need(buf []byte, offset, n int, field string) error {
	if offset+n > len(buf) {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, %d remain",
			ErrTruncated, field, n, offset, len(buf)-offset)
	}
	return nil
}

// classifyScript recognizes the two pay-to-hash script shapes and fills in
// the output's address fields. Unrecognized shapes are left as-is; that is
// not an error.
//
//	P2PKH:  OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
//	P2WPKH: OP_0 <20 bytes>
func classifyScript(out *Output) {
	s := out.Script
	switch {
	case len(s) == p2pkhScriptSize &&
		s[0] == 0x76 && s[1] == 0xa9 && s[2] == 0x14 &&
		s[23] == 0x88 && s[24] == 0xac:
		out.AddressHash = s[3:23]
		out.Address = address.EncodeBase58Check(address.VersionP2PKH, out.AddressHash)

	case len(s) == p2wpkhScriptSize && s[0] == 0x00 && s[1] == 0x14:
		out.AddressHash = s[2:22]
		if addr, err := address.EncodeSegwit(address.HRPMainnet, out.AddressHash); err == nil {
			out.Address = addr
		}
	}
}
