package spv

import "errors"

var (
	// ErrInvalidHex indicates a hex-encoded input could not be decoded.
	ErrInvalidHex = errors.New("spv: invalid hex")

	// ErrHashLength indicates a decoded hash is not exactly 32 bytes.
	ErrHashLength = errors.New("spv: invalid hash length")

	// ErrTxIDMismatch indicates the recomputed transaction hash differs
	// from the expected transaction ID.
	ErrTxIDMismatch = errors.New("spv: transaction hash does not match txid")

	// ErrMerkleMismatch indicates the recomputed Merkle root does not match
	// the expected root.
	ErrMerkleMismatch = errors.New("spv: merkle root mismatch")

	// ErrInvalidHeader indicates the header is not exactly 80 bytes or
	// otherwise fails deserialization.
	ErrInvalidHeader = errors.New("spv: invalid header")

	// ErrHeaderNotFound indicates the block header was not found in the local store.
	ErrHeaderNotFound = errors.New("spv: header not found")

	// ErrDuplicateHeader indicates a header with this hash already exists.
	ErrDuplicateHeader = errors.New("spv: duplicate header")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("spv: required parameter is nil")

	// ErrInsufficientPoW indicates the header hash does not meet the target difficulty.
	ErrInsufficientPoW = errors.New("spv: insufficient proof of work")
)
