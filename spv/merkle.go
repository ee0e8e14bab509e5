package spv

import "fmt"

// ComputeMerkleRoot recomputes a Merkle root from a leaf hash, the leaf's
// position in the block's transaction list, and the ordered sibling hashes
// (leaf's sibling first, root's child last). All hashes are in internal
// byte order.
//
// Algorithm:
//
//	hash = leaf
//	for i, sibling in siblings:
//	    if bit i of position is 0:  hash = DoubleHash(hash || sibling)
//	    else:                       hash = DoubleHash(sibling || hash)
//
// Testing bit i of the position is equivalent to halving the position once
// per level and checking parity. Returns nil if any hash is not 32 bytes.
func ComputeMerkleRoot(leaf []byte, position uint32, siblings [][]byte) []byte {
	if len(leaf) != HashSize {
		return nil
	}

	hash := make([]byte, HashSize)
	copy(hash, leaf)

	for i, sibling := range siblings {
		if len(sibling) != HashSize {
			return nil
		}
		combined := make([]byte, 2*HashSize)
		if (position>>uint(i))&1 == 0 {
			// Current hash is on the left
			copy(combined[:HashSize], hash)
			copy(combined[HashSize:], sibling)
		} else {
			// Current hash is on the right
			copy(combined[:HashSize], sibling)
			copy(combined[HashSize:], hash)
		}
		hash = DoubleHash(combined)
	}

	return hash
}

// VerifyMerkleProof checks that the leaf at the given position recomputes to
// expectedRoot through the sibling path. An empty sibling list is valid only
// when the leaf already equals the root (single-transaction block).
func VerifyMerkleProof(leaf []byte, position uint32, siblings [][]byte, expectedRoot []byte) error {
	if len(expectedRoot) != HashSize {
		return fmt.Errorf("%w: expected root must be %d bytes", ErrHashLength, HashSize)
	}
	computed := ComputeMerkleRoot(leaf, position, siblings)
	if computed == nil {
		return fmt.Errorf("%w: leaf and siblings must be %d bytes", ErrHashLength, HashSize)
	}

	for i := 0; i < HashSize; i++ {
		if computed[i] != expectedRoot[i] {
			return ErrMerkleMismatch
		}
	}

	return nil
}

// BuildMerkleTree builds a full Merkle tree from a list of transaction hashes
// (internal byte order). Returns the tree as levels, where level 0 is the
// leaves and the last level is the single root. Odd levels are padded by
// duplicating the last element.
func BuildMerkleTree(txHashes [][]byte) [][][]byte {
	if len(txHashes) == 0 {
		return nil
	}

	level := make([][]byte, len(txHashes))
	for i, h := range txHashes {
		level[i] = make([]byte, HashSize)
		copy(level[i], h)
	}

	levels := [][][]byte{level}
	for len(level) > 1 {
		if len(level)%2 != 0 {
			dup := make([]byte, HashSize)
			copy(dup, level[len(level)-1])
			level = append(level, dup)
		}

		next := make([][]byte, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			combined := make([]byte, 2*HashSize)
			copy(combined[:HashSize], level[i])
			copy(combined[HashSize:], level[i+1])
			next[i/2] = DoubleHash(combined)
		}
		level = next
		levels = append(levels, level)
	}

	return levels
}

// MerkleBranch extracts the sibling path for the leaf at the given position
// from a tree built by BuildMerkleTree. Used for constructing proofs in
// tests and tooling.
func MerkleBranch(levels [][][]byte, position uint32) [][]byte {
	var branch [][]byte
	pos := position
	for _, level := range levels[:len(levels)-1] {
		sibling := pos ^ 1
		if sibling >= uint32(len(level)) {
			sibling = pos // odd level, last element pairs with itself
		}
		node := make([]byte, HashSize)
		copy(node, level[sibling])
		branch = append(branch, node)
		pos >>= 1
	}
	return branch
}
