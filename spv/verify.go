// Package spv verifies, without trusting a third party, that a Bitcoin
// transaction was included in a block and that a cumulative amount was paid
// to a target address. All inputs are supplied as static hex strings; the
// engine performs no I/O and keeps no state between calls, so concurrent
// verifications share nothing.
package spv

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/bitproof-org/libspv-go/tx"
)

// Request carries the inputs of a single verification. Hash-like fields are
// hex strings in display (reversed) byte order, as surfaced by explorers and
// RPC APIs; the engine converts them to internal order before any hashing
// arithmetic.
type Request struct {
	// RawTxHex is the full serialized transaction, hex encoded.
	RawTxHex string

	// TxID is the expected transaction identifier (display order).
	TxID string

	// MerkleSiblings is the ordered sibling path, leaf's sibling first
	// (display order).
	MerkleSiblings []string

	// Position is the transaction's index in the block's leaf ordering.
	Position uint32

	// BlockHeaderHex is the 80-byte block header, hex encoded.
	BlockHeaderHex string

	// Address is the target address the payment total is computed for.
	Address string
}

// Result is the outcome of a successful verification.
type Result struct {
	// BlockHash is the block identifier in display order (64 hex chars).
	BlockHash string

	// TotalSatoshis is the summed value of the outputs paying the target.
	TotalSatoshis uint64
}

// Verify runs the full verification pipeline, short-circuiting on the first
// failure:
//  1. Recompute the transaction hash and compare to the expected txid.
//  2. Convert the Merkle siblings to internal order.
//  3. Deserialize the 80-byte header for its Merkle root and block hash.
//  4. Prove Merkle inclusion of the transaction at the given position.
//  5. Parse the transaction's outputs and total the payment to the target.
//
// There is no retry and no partial success: the caller receives either a
// Result or a single typed error.
func Verify(req *Request) (*Result, error) {
	res, _, err := verify(req)
	return res, err
}

// verify is Verify plus the deserialized header, for callers that record it.
func verify(req *Request) (*Result, *BlockHeader, error) {
	if req == nil {
		return nil, nil, fmt.Errorf("%w: request", ErrNilParam)
	}

	txBytes, err := hex.DecodeString(req.RawTxHex)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: transaction: %v", ErrInvalidHex, err)
	}
	leaf := DoubleHash(txBytes)

	expected, err := ParseDisplayHash(req.TxID)
	if err != nil {
		return nil, nil, fmt.Errorf("txid: %w", err)
	}
	if !bytes.Equal(leaf, expected) {
		return nil, nil, fmt.Errorf("%w: computed %s", ErrTxIDMismatch, DisplayHash(leaf))
	}

	siblings := make([][]byte, len(req.MerkleSiblings))
	for i, s := range req.MerkleSiblings {
		sibling, err := ParseDisplayHash(s)
		if err != nil {
			return nil, nil, fmt.Errorf("merkle sibling %d: %w", i, err)
		}
		siblings[i] = sibling
	}

	headerBytes, err := hex.DecodeString(req.BlockHeaderHex)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: block header: %v", ErrInvalidHex, err)
	}
	header, err := DeserializeHeader(headerBytes)
	if err != nil {
		return nil, nil, err
	}

	if err := VerifyMerkleProof(leaf, req.Position, siblings, header.MerkleRoot); err != nil {
		return nil, nil, err
	}

	outputs, err := tx.ParseOutputs(txBytes)
	if err != nil {
		return nil, nil, err
	}

	total, err := tx.SumPayments(outputs, req.Address)
	if err != nil {
		return nil, nil, err
	}

	return &Result{
		BlockHash:     DisplayHash(header.Hash),
		TotalSatoshis: total,
	}, header, nil
}

// VerifyInclusion is the reduced verification contract: it checks only that
// the transaction hashes to the expected txid and that the Merkle proof
// recomputes to the given root (display order). No header and no payment
// total are involved. A nil return means the transaction is included.
func VerifyInclusion(txHex, txID string, siblings []string, position uint32, merkleRootHex string) error {
	txBytes, err := hex.DecodeString(txHex)
	if err != nil {
		return fmt.Errorf("%w: transaction: %v", ErrInvalidHex, err)
	}
	leaf := DoubleHash(txBytes)

	expected, err := ParseDisplayHash(txID)
	if err != nil {
		return fmt.Errorf("txid: %w", err)
	}
	if !bytes.Equal(leaf, expected) {
		return fmt.Errorf("%w: computed %s", ErrTxIDMismatch, DisplayHash(leaf))
	}

	nodes := make([][]byte, len(siblings))
	for i, s := range siblings {
		node, err := ParseDisplayHash(s)
		if err != nil {
			return fmt.Errorf("merkle sibling %d: %w", i, err)
		}
		nodes[i] = node
	}

	root, err := ParseDisplayHash(merkleRootHex)
	if err != nil {
		return fmt.Errorf("merkle root: %w", err)
	}

	return VerifyMerkleProof(leaf, position, nodes, root)
}

// VerifyStored runs Verify and, on success, records the block header in the
// given store so later requests against the same block can be cross-checked
// without re-supplying it. A header already present is not an error.
func VerifyStored(req *Request, store HeaderStore) (*Result, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: header store", ErrNilParam)
	}

	res, header, err := verify(req)
	if err != nil {
		return nil, err
	}

	if err := store.PutHeader(header); err != nil && !errors.Is(err, ErrDuplicateHeader) {
		return nil, err
	}
	return res, nil
}
