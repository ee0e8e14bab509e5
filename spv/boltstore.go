package spv

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketHeaders       = []byte("headers")
	bucketHeadersHeight = []byte("headers_height")
)

// BoltHeaderStore persists block headers in a bbolt database, keyed by block
// hash with a secondary height index.
type BoltHeaderStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ HeaderStore = (*BoltHeaderStore)(nil)

// OpenBoltHeaderStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltHeaderStore(dbPath string) (*BoltHeaderStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("spv: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("spv: open bolt db: %w", err)
	}

	err = db.Update(func(btx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketHeaders, bucketHeadersHeight} {
			if _, err := btx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("spv: create buckets: %w", err)
	}

	return &BoltHeaderStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltHeaderStore) Close() error { return s.db.Close() }

// heightKey encodes a block height as a 4-byte big-endian key for sorted storage.
func heightKey(h uint32) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, h)
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// PutHeader stores a block header keyed by block hash and height.
func (s *BoltHeaderStore) PutHeader(header *BlockHeader) error {
	if header == nil {
		return fmt.Errorf("%w: header", ErrNilParam)
	}
	if len(header.Hash) == 0 {
		header.Hash = ComputeHeaderHash(header)
	}
	if len(header.Hash) != HashSize {
		return fmt.Errorf("%w: header hash must be %d bytes", ErrInvalidHeader, HashSize)
	}

	return s.db.Update(func(btx *bbolt.Tx) error {
		hb := btx.Bucket(bucketHeaders)
		if hb.Get(header.Hash) != nil {
			return ErrDuplicateHeader
		}

		data, err := encodeGob(header)
		if err != nil {
			return fmt.Errorf("encode header: %w", err)
		}

		if err := hb.Put(header.Hash, data); err != nil {
			return fmt.Errorf("boltstore: put header by hash: %w", err)
		}
		if err := btx.Bucket(bucketHeadersHeight).Put(heightKey(header.Height), header.Hash); err != nil {
			return fmt.Errorf("boltstore: put header by height: %w", err)
		}
		return nil
	})
}

// GetHeader retrieves a header by block hash.
func (s *BoltHeaderStore) GetHeader(blockHash []byte) (*BlockHeader, error) {
	if len(blockHash) != HashSize {
		return nil, fmt.Errorf("%w: block hash must be %d bytes", ErrHashLength, HashSize)
	}

	var header BlockHeader
	err := s.db.View(func(btx *bbolt.Tx) error {
		data := btx.Bucket(bucketHeaders).Get(blockHash)
		if data == nil {
			return ErrHeaderNotFound
		}
		if err := decodeGob(data, &header); err != nil {
			return fmt.Errorf("boltstore: decode header: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &header, nil
}

// GetHeaderByHeight retrieves a header by block height.
func (s *BoltHeaderStore) GetHeaderByHeight(height uint32) (*BlockHeader, error) {
	var header BlockHeader
	err := s.db.View(func(btx *bbolt.Tx) error {
		hash := btx.Bucket(bucketHeadersHeight).Get(heightKey(height))
		if hash == nil {
			return ErrHeaderNotFound
		}
		data := btx.Bucket(bucketHeaders).Get(hash)
		if data == nil {
			return ErrHeaderNotFound
		}
		if err := decodeGob(data, &header); err != nil {
			return fmt.Errorf("boltstore: decode header by height: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &header, nil
}

// GetTip returns the header with the greatest height.
func (s *BoltHeaderStore) GetTip() (*BlockHeader, error) {
	var header BlockHeader
	err := s.db.View(func(btx *bbolt.Tx) error {
		c := btx.Bucket(bucketHeadersHeight).Cursor()
		k, v := c.Last()
		if k == nil {
			return ErrHeaderNotFound
		}
		data := btx.Bucket(bucketHeaders).Get(v)
		if data == nil {
			return ErrHeaderNotFound
		}
		if err := decodeGob(data, &header); err != nil {
			return fmt.Errorf("boltstore: decode tip header: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &header, nil
}

// GetHeaderCount returns the total number of stored headers.
func (s *BoltHeaderStore) GetHeaderCount() (uint64, error) {
	var count uint64
	err := s.db.View(func(btx *bbolt.Tx) error {
		count = uint64(btx.Bucket(bucketHeaders).Stats().KeyN)
		return nil
	})
	return count, err
}
