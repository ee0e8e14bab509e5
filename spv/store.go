package spv

import (
	"fmt"
	"sync"
)

// HeaderStore persists block headers verified by this engine so callers can
// cache them between requests.
type HeaderStore interface {
	// PutHeader stores a block header.
	PutHeader(header *BlockHeader) error

	// GetHeader retrieves a header by block hash (internal byte order).
	GetHeader(blockHash []byte) (*BlockHeader, error)

	// GetHeaderByHeight retrieves a header by block height.
	GetHeaderByHeight(height uint32) (*BlockHeader, error)

	// GetTip returns the header with the greatest height.
	GetTip() (*BlockHeader, error)

	// GetHeaderCount returns the total number of stored headers.
	GetHeaderCount() (uint64, error)
}

// MemHeaderStore is an in-memory implementation of HeaderStore.
type MemHeaderStore struct {
	mu        sync.RWMutex
	byHash    map[string]*BlockHeader
	byHeight  map[uint32]*BlockHeader
	tipHeight uint32
	hasTip    bool
}

// Compile-time interface check.
var _ HeaderStore = (*MemHeaderStore)(nil)

// NewMemHeaderStore creates a new in-memory header store.
func NewMemHeaderStore() *MemHeaderStore {
	return &MemHeaderStore{
		byHash:   make(map[string]*BlockHeader),
		byHeight: make(map[uint32]*BlockHeader),
	}
}

// PutHeader stores a block header, computing its hash if unset.
func (s *MemHeaderStore) PutHeader(header *BlockHeader) error {
	if header == nil {
		return fmt.Errorf("%w: header", ErrNilParam)
	}

	if len(header.Hash) == 0 {
		header.Hash = ComputeHeaderHash(header)
	}
	if len(header.Hash) != HashSize {
		return fmt.Errorf("%w: header hash must be %d bytes", ErrInvalidHeader, HashSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := string(header.Hash)
	if _, exists := s.byHash[key]; exists {
		return ErrDuplicateHeader
	}

	s.byHash[key] = header
	s.byHeight[header.Height] = header

	if !s.hasTip || header.Height > s.tipHeight {
		s.tipHeight = header.Height
		s.hasTip = true
	}

	return nil
}

// GetHeader retrieves a header by block hash.
func (s *MemHeaderStore) GetHeader(blockHash []byte) (*BlockHeader, error) {
	if len(blockHash) != HashSize {
		return nil, fmt.Errorf("%w: block hash must be %d bytes", ErrHashLength, HashSize)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.byHash[string(blockHash)]
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return h, nil
}

// GetHeaderByHeight retrieves a header by block height.
func (s *MemHeaderStore) GetHeaderByHeight(height uint32) (*BlockHeader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.byHeight[height]
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return h, nil
}

// GetTip returns the header with the greatest height.
func (s *MemHeaderStore) GetTip() (*BlockHeader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasTip {
		return nil, ErrHeaderNotFound
	}
	return s.byHeight[s.tipHeight], nil
}

// GetHeaderCount returns the total number of stored headers.
func (s *MemHeaderStore) GetHeaderCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.byHash)), nil
}
