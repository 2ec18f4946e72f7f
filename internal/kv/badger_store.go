package kv

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store using BadgerDB. Badger gives us MVCC
// (snapshot-isolated transactions keyed by internal version timestamps)
// for free, exactly as the teacher's datalog/storage/badger_store.go
// relies on it — we don't layer a second versioning scheme on top.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a BadgerDB-backed store at path, tuned
// the way the teacher's BadgerStore is tuned for a read-heavy analytic
// workload (datalog/storage/badger_store.go).
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.MemTableSize = 128 << 20
	opts.BlockCacheSize = 256 << 20
	opts.IndexCacheSize = 100 << 20
	opts.DetectConflicts = false
	opts.NumCompactors = 4
	opts.ValueThreshold = 1 << 10

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }

func (s *BadgerStore) Snapshot() (Snapshot, error) {
	return &badgerSnapshot{txn: s.db.NewTransaction(false)}, nil
}

func (s *BadgerStore) NewBatch() (WriteBatch, error) {
	return &badgerBatch{txn: s.db.NewTransaction(true)}, nil
}

// GetCounter implements CounterStore.
func (s *BadgerStore) GetCounter(key CounterKey) int64 {
	var value int64
	_ = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(counterStoreKey(key))
		if err != nil {
			return nil // missing reads as zero, per spec 4.1
		}
		return item.Value(func(val []byte) error {
			if len(val) == 8 {
				value = int64(binary.BigEndian.Uint64(val))
			}
			return nil
		})
	})
	return value
}

// IncrCounter implements CounterStore.
func (s *BadgerStore) IncrCounter(key CounterKey, delta int64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		current := int64(0)
		item, err := txn.Get(counterStoreKey(key))
		if err == nil {
			_ = item.Value(func(val []byte) error {
				if len(val) == 8 {
					current = int64(binary.BigEndian.Uint64(val))
				}
				return nil
			})
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(current+delta))
		return txn.Set(counterStoreKey(key), buf)
	})
}

func counterStoreKey(key CounterKey) []byte {
	return []byte("#cnt:" + key.Namespace + ":" + key.Type)
}

type badgerSnapshot struct {
	txn *badger.Txn
}

func (s *badgerSnapshot) Get(key Key) ([]byte, bool, error) {
	item, err := s.txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out []byte
	err = item.Value(func(val []byte) error {
		out = append([]byte(nil), val...)
		return nil
	})
	return out, true, err
}

func (s *badgerSnapshot) Scan(start, end Key, dir Direction) (Iterator, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	opts.Reverse = dir == Reverse

	it := s.txn.NewIterator(opts)
	return &badgerIterator{it: it, lower: start, upper: end, dir: dir, first: true}, nil
}

func (s *badgerSnapshot) Close() { s.txn.Discard() }

// badgerIterator walks [lower, upper) in either direction. lower and
// upper keep their canonical-order meaning regardless of dir; only the
// seek starting point and termination check flip with direction.
type badgerIterator struct {
	it    *badger.Iterator
	lower Key
	upper Key
	dir   Direction
	first bool
}

func (i *badgerIterator) Next() bool {
	if i.first {
		i.seekStart()
		i.first = false
	} else {
		i.it.Next()
	}
	if !i.it.Valid() {
		return false
	}
	key := i.it.Item().KeyCopy(nil)
	if i.dir == Canonical && len(i.upper) > 0 && bytes.Compare(key, i.upper) >= 0 {
		return false
	}
	if i.dir == Reverse && len(i.lower) > 0 && bytes.Compare(key, i.lower) < 0 {
		return false
	}
	return true
}

// seekStart positions the underlying iterator at the first entry this
// scan should visit. In reverse mode, Seek lands on the first key <=
// upper; since upper is an exclusive bound, a literal hit on upper must
// be skipped.
func (i *badgerIterator) seekStart() {
	if i.dir == Reverse {
		if len(i.upper) == 0 {
			i.it.Rewind()
			return
		}
		i.it.Seek(i.upper)
		if i.it.Valid() && bytes.Equal(i.it.Item().KeyCopy(nil), i.upper) {
			i.it.Next()
		}
		return
	}
	if len(i.lower) == 0 {
		i.it.Rewind()
		return
	}
	i.it.Seek(i.lower)
}

func (i *badgerIterator) Entry() Entry {
	item := i.it.Item()
	key := item.KeyCopy(nil)
	val, _ := item.ValueCopy(nil)
	return Entry{Key: key, Value: val}
}

func (i *badgerIterator) Close() error {
	i.it.Close()
	return nil
}

type badgerBatch struct {
	txn *badger.Txn
}

func (b *badgerBatch) Put(key Key, value []byte) {
	_ = b.txn.Set(key, value)
}

func (b *badgerBatch) Delete(key Key) {
	_ = b.txn.Delete(key)
}

func (b *badgerBatch) Commit() error {
	return b.txn.Commit()
}

func (b *badgerBatch) Discard() {
	b.txn.Discard()
}
