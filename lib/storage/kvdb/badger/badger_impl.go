package badger

import (
	"bytes"

	"github.com/dgraph-io/badger/v3"

	"github.com/xuperchain/compliancecore/lib/storage/kvdb"
)

// BadgerDatabase badger存储引擎实例
type BadgerDatabase struct {
	fn string
	db *badger.DB
}

func init() {
	kvdb.Register(kvdb.KVEngineTypeBadger, NewKVDBInstance)
}

// NewKVDBInstance instance of BadgerDatabase by given kv parameters
func NewKVDBInstance(param *kvdb.KVParameter) (kvdb.Database, error) {
	baseDB := new(BadgerDatabase)
	err := baseDB.Open(param.GetDBPath(), map[string]interface{}{
		"cache": param.GetMemCacheSize(),
	})
	if err != nil {
		return nil, err
	}

	return baseDB, nil
}

// Open opens a badger instance at the given dir
func (bdb *BadgerDatabase) Open(path string, options map[string]interface{}) error {
	opts := badger.DefaultOptions(path)
	opts = opts.WithLogger(nil)
	if cache, ok := options["cache"].(int); ok && cache > 0 {
		opts = opts.WithBlockCacheSize(int64(cache) << 20)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return err
	}
	bdb.fn = path
	bdb.db = db
	return nil
}

// Path returns the path to the database directory
func (bdb *BadgerDatabase) Path() string {
	return bdb.fn
}

// Put puts the given key / value to the database
func (bdb *BadgerDatabase) Put(key []byte, value []byte) error {
	return bdb.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Get returns the given key if it's present
func (bdb *BadgerDatabase) Get(key []byte) ([]byte, error) {
	var val []byte
	err := bdb.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, kvdb.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Has it checks if the given key exists
func (bdb *BadgerDatabase) Has(key []byte) (bool, error) {
	_, err := bdb.Get(key)
	if err == kvdb.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete deletes the key from the database
func (bdb *BadgerDatabase) Delete(key []byte) error {
	return bdb.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Close closes the badger instance
func (bdb *BadgerDatabase) Close() {
	bdb.db.Close()
}

// NewBatch returns a new batch instance
func (bdb *BadgerDatabase) NewBatch() kvdb.Batch {
	return &badgerBatch{db: bdb.db, wb: bdb.db.NewWriteBatch(), keys: map[string]bool{}}
}

// NewIteratorWithRange returns a new iterator with given range.
// badger只支持单向遍历，这里一次性快照到内存再提供双向迭代
func (bdb *BadgerDatabase) NewIteratorWithRange(start []byte, limit []byte) kvdb.Iterator {
	snap := &memIterator{pos: -1}
	err := bdb.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(start); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			if limit != nil && bytes.Compare(key, limit) >= 0 {
				break
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			snap.keys = append(snap.keys, key)
			snap.values = append(snap.values, val)
		}
		return nil
	})
	if err != nil {
		snap.err = err
	}
	return snap
}

// NewIteratorWithPrefix returns a new iterator with given prefix
func (bdb *BadgerDatabase) NewIteratorWithPrefix(prefix []byte) kvdb.Iterator {
	limit := prefixLimit(prefix)
	return bdb.NewIteratorWithRange(prefix, limit)
}

// prefixLimit returns the smallest key greater than all keys with the prefix
func prefixLimit(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		c := prefix[i]
		if c < 0xff {
			limit := make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			return limit
		}
	}
	return nil
}

type badgerBatch struct {
	db   *badger.DB
	wb   *badger.WriteBatch
	keys map[string]bool
	size int
}

func (b *badgerBatch) Put(key, value []byte) error {
	err := b.wb.Set(append([]byte{}, key...), append([]byte{}, value...))
	if err != nil {
		return err
	}
	b.keys[string(key)] = true
	b.size += len(value)
	return nil
}

func (b *badgerBatch) Delete(key []byte) error {
	err := b.wb.Delete(append([]byte{}, key...))
	if err != nil {
		return err
	}
	b.size += 1
	return nil
}

func (b *badgerBatch) Write() error {
	return b.wb.Flush()
}

func (b *badgerBatch) ValueSize() int {
	return b.size
}

func (b *badgerBatch) Reset() {
	b.wb.Cancel()
	b.wb = b.db.NewWriteBatch()
	b.keys = map[string]bool{}
	b.size = 0
}

func (b *badgerBatch) Exist(key []byte) bool {
	return b.keys[string(key)]
}

// memIterator 内存快照上的双向迭代器
type memIterator struct {
	keys   [][]byte
	values [][]byte
	pos    int
	err    error
}

func (m *memIterator) Key() []byte {
	if m.pos < 0 || m.pos >= len(m.keys) {
		return nil
	}
	return m.keys[m.pos]
}

func (m *memIterator) Value() []byte {
	if m.pos < 0 || m.pos >= len(m.values) {
		return nil
	}
	return m.values[m.pos]
}

func (m *memIterator) Next() bool {
	if m.pos >= len(m.keys) {
		return false
	}
	m.pos++
	return m.pos < len(m.keys)
}

func (m *memIterator) Prev() bool {
	if m.pos < 0 {
		return false
	}
	m.pos--
	return m.pos >= 0
}

func (m *memIterator) First() bool {
	if len(m.keys) == 0 {
		return false
	}
	m.pos = 0
	return true
}

func (m *memIterator) Last() bool {
	if len(m.keys) == 0 {
		return false
	}
	m.pos = len(m.keys) - 1
	return true
}

func (m *memIterator) Error() error {
	return m.err
}

func (m *memIterator) Release() {
	m.keys = nil
	m.values = nil
	m.pos = -1
}
