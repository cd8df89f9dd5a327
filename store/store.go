// Package store persists the payments a scan recovered. Records carry only
// public data; masks and script private keys never reach the store.
package store

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bitfsorg/tariscan-go/network"
	"github.com/bitfsorg/tariscan-go/scanner"
	"github.com/bitfsorg/tariscan-go/transaction"
)

// HashSize is the length of an output hash.
const HashSize = 32

// Record is the stored view of a recovered payment.
type Record struct {
	Hash            []byte
	Network         network.Network
	Source          scanner.Source
	OutputType      transaction.OutputType
	Value           transaction.MicroMinotari
	PaymentID       []byte
	Maturity        uint64
	ScriptPublicKey []byte
	RecoveredAt     time.Time
}

// NewRecord copies the public fields of p.
func NewRecord(p *scanner.RecoveredPayment, n network.Network) (*Record, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: payment", ErrNilParam)
	}
	r := &Record{
		Hash:        append([]byte(nil), p.Hash[:]...),
		Network:     n,
		Source:      p.Source,
		OutputType:  p.OutputType,
		Value:       p.Value,
		Maturity:    p.Maturity,
		RecoveredAt: time.Now().UTC(),
	}
	if len(p.PaymentID) > 0 {
		r.PaymentID = append([]byte(nil), p.PaymentID...)
	}
	if p.ScriptPublicKey != nil {
		r.ScriptPublicKey = p.ScriptPublicKey.Bytes()
	}
	return r, nil
}

// PaymentStore persists recovered payments keyed by output hash.
type PaymentStore interface {
	// Put stores a record. Returns ErrDuplicate if the hash already exists.
	Put(r *Record) error

	// Get retrieves a record by output hash.
	Get(hash []byte) (*Record, error)

	// List returns all records ordered by hash.
	List() ([]*Record, error)

	// Delete removes a record.
	Delete(hash []byte) error

	// Count returns the number of stored records.
	Count() (int, error)

	// TotalValue sums the value of every record on network n.
	TotalValue(n network.Network) (transaction.MicroMinotari, error)
}

func checkRecord(r *Record) error {
	if r == nil {
		return fmt.Errorf("%w: record", ErrNilParam)
	}
	return checkHash(r.Hash)
}

func checkHash(h []byte) error {
	if len(h) != HashSize {
		return fmt.Errorf("%w: hash must be %d bytes", ErrInvalidHash, HashSize)
	}
	return nil
}

func cloneRecord(r *Record) *Record {
	c := *r
	c.Hash = bytes.Clone(r.Hash)
	c.PaymentID = bytes.Clone(r.PaymentID)
	c.ScriptPublicKey = bytes.Clone(r.ScriptPublicKey)
	return &c
}

func sumValues(records []*Record, n network.Network) (transaction.MicroMinotari, error) {
	var total transaction.MicroMinotari
	for _, r := range records {
		if r.Network != n {
			continue
		}
		sum, err := total.CheckedAdd(r.Value)
		if err != nil {
			return 0, fmt.Errorf("store: total value: %w", err)
		}
		total = sum
	}
	return total, nil
}

// MemStore is an in-memory PaymentStore.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// Compile-time interface check.
var _ PaymentStore = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]*Record)}
}

// Put stores a copy of r.
func (s *MemStore) Put(r *Record) error {
	if err := checkRecord(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(r.Hash)
	if _, ok := s.records[key]; ok {
		return ErrDuplicate
	}
	s.records[key] = cloneRecord(r)
	return nil
}

// Get retrieves a copy of the record for hash.
func (s *MemStore) Get(hash []byte) (*Record, error) {
	if err := checkHash(hash); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[string(hash)]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(r), nil
}

// List returns copies of all records ordered by hash.
func (s *MemStore) List() ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, cloneRecord(r))
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].Hash, out[j].Hash) < 0 })
	return out, nil
}

// Delete removes the record for hash.
func (s *MemStore) Delete(hash []byte) error {
	if err := checkHash(hash); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[string(hash)]; !ok {
		return ErrNotFound
	}
	delete(s.records, string(hash))
	return nil
}

// Count returns the number of records.
func (s *MemStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// TotalValue sums the records on network n.
func (s *MemStore) TotalValue(n network.Network) (transaction.MicroMinotari, error) {
	records, err := s.List()
	if err != nil {
		return 0, err
	}
	return sumValues(records, n)
}
