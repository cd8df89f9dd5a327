package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/tariscan-go/network"
	"github.com/bitfsorg/tariscan-go/transaction"
)

var (
	bucketPayments       = []byte("payments")
	bucketPaymentScripts = []byte("payment_scripts")
)

// BoltStore persists payments in a bbolt database. Records are gob-encoded
// under their output hash; a second bucket indexes them by script public key.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ PaymentStore = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketPayments, bucketPaymentScripts} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func scriptIndexKey(r *Record) []byte {
	k := make([]byte, 0, len(r.ScriptPublicKey)+HashSize)
	k = append(k, r.ScriptPublicKey...)
	return append(k, r.Hash...)
}

// Put stores r. Returns ErrDuplicate if the hash already exists.
func (s *BoltStore) Put(r *Record) error {
	if err := checkRecord(r); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPayments)
		if b.Get(r.Hash) != nil {
			return ErrDuplicate
		}
		data, err := encodeGob(r)
		if err != nil {
			return fmt.Errorf("encode payment: %w", err)
		}
		if err := b.Put(r.Hash, data); err != nil {
			return fmt.Errorf("boltstore: put payment: %w", err)
		}
		if len(r.ScriptPublicKey) > 0 {
			if err := tx.Bucket(bucketPaymentScripts).Put(scriptIndexKey(r), []byte{}); err != nil {
				return fmt.Errorf("boltstore: put script index: %w", err)
			}
		}
		return nil
	})
}

// Get retrieves the record for hash.
func (s *BoltStore) Get(hash []byte) (*Record, error) {
	if err := checkHash(hash); err != nil {
		return nil, err
	}

	var r Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketPayments).Get(hash)
		if data == nil {
			return ErrNotFound
		}
		if err := decodeGob(data, &r); err != nil {
			return fmt.Errorf("boltstore: decode payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByScriptKey returns the records paid to a script public key.
func (s *BoltStore) GetByScriptKey(scriptPub []byte) ([]*Record, error) {
	if len(scriptPub) == 0 {
		return nil, fmt.Errorf("%w: script public key", ErrNilParam)
	}

	var records []*Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		payments := tx.Bucket(bucketPayments)
		c := tx.Bucket(bucketPaymentScripts).Cursor()
		for k, _ := c.Seek(scriptPub); k != nil && bytes.HasPrefix(k, scriptPub); k, _ = c.Next() {
			data := payments.Get(k[len(scriptPub):])
			if data == nil {
				continue // stale index entry
			}
			var r Record
			if err := decodeGob(data, &r); err != nil {
				return fmt.Errorf("boltstore: decode payment by script key: %w", err)
			}
			records = append(records, &r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: get by script key: %w", err)
	}
	return records, nil
}

// List returns all records ordered by hash.
func (s *BoltStore) List() ([]*Record, error) {
	var records []*Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPayments).ForEach(func(k, v []byte) error {
			var r Record
			if err := decodeGob(v, &r); err != nil {
				return fmt.Errorf("boltstore: decode payment in list: %w", err)
			}
			records = append(records, &r)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: list payments: %w", err)
	}
	return records, nil
}

// Delete removes the record for hash and its index entry.
func (s *BoltStore) Delete(hash []byte) error {
	if err := checkHash(hash); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPayments)
		data := b.Get(hash)
		if data == nil {
			return ErrNotFound
		}
		var r Record
		if err := decodeGob(data, &r); err != nil {
			return fmt.Errorf("boltstore: decode payment: %w", err)
		}
		if err := b.Delete(hash); err != nil {
			return fmt.Errorf("boltstore: delete payment: %w", err)
		}
		if len(r.ScriptPublicKey) > 0 {
			if err := tx.Bucket(bucketPaymentScripts).Delete(scriptIndexKey(&r)); err != nil {
				return fmt.Errorf("boltstore: delete script index entry: %w", err)
			}
		}
		return nil
	})
}

// Count returns the number of records.
func (s *BoltStore) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketPayments).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("boltstore: count payments: %w", err)
	}
	return n, nil
}

// TotalValue sums the records on network n.
func (s *BoltStore) TotalValue(n network.Network) (transaction.MicroMinotari, error) {
	records, err := s.List()
	if err != nil {
		return 0, err
	}
	return sumValues(records, n)
}
