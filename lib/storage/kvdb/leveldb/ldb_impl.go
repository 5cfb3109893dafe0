package leveldb

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/xuperchain/compliancecore/lib/storage/kvdb"
)

// LDBDatabase define leveldb instance structure
type LDBDatabase struct {
	fn string      // filename of db
	db *leveldb.DB // LevelDB instance
}

func init() {
	kvdb.Register(kvdb.KVEngineTypeLDB, NewKVDBInstance)
}

// NewKVDBInstance instance of LDBDatabase by given kv parameters
func NewKVDBInstance(param *kvdb.KVParameter) (kvdb.Database, error) {
	baseDB := new(LDBDatabase)
	err := baseDB.Open(param.GetDBPath(), map[string]interface{}{
		"cache":     param.GetMemCacheSize(),
		"fds":       param.GetFileHandlersCacheSize(),
		"dataPaths": []string{},
	})
	if err != nil {
		return nil, err
	}

	return baseDB, nil
}

func setDefaultOptions(options map[string]interface{}) {
	if _, ok := options["cache"]; !ok {
		options["cache"] = 16
	}
	if _, ok := options["fds"]; !ok {
		options["fds"] = 16
	}
}

// Open opens an instance of LDB with parameters (ldb path and other options)
func (ldb *LDBDatabase) Open(path string, options map[string]interface{}) error {
	setDefaultOptions(options)
	cache := options["cache"].(int)
	fds := options["fds"].(int)

	db, err := leveldb.OpenFile(path, &opt.Options{
		OpenFilesCacheCapacity: fds,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return err
	}
	ldb.fn = path
	ldb.db = db
	return nil
}

// Path returns the path to the database directory
func (ldb *LDBDatabase) Path() string {
	return ldb.fn
}

// Put puts the given key / value to the queue
func (ldb *LDBDatabase) Put(key []byte, value []byte) error {
	return ldb.db.Put(key, value, nil)
}

// Has it checks if the given key exists
func (ldb *LDBDatabase) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, nil)
}

// Get returns the given key if it's present
func (ldb *LDBDatabase) Get(key []byte) ([]byte, error) {
	dat, err := ldb.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, kvdb.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dat, nil
}

// Delete deletes the key from the queue and database
func (ldb *LDBDatabase) Delete(key []byte) error {
	return ldb.db.Delete(key, nil)
}

// Close closes the leveldb instance
func (ldb *LDBDatabase) Close() {
	ldb.db.Close()
}

// NewIteratorWithRange returns a new iterator with given range
func (ldb *LDBDatabase) NewIteratorWithRange(start []byte, limit []byte) kvdb.Iterator {
	return ldb.db.NewIterator(&util.Range{Start: start, Limit: limit}, nil)
}

// NewIteratorWithPrefix returns a new iterator with given prefix
func (ldb *LDBDatabase) NewIteratorWithPrefix(prefix []byte) kvdb.Iterator {
	return ldb.db.NewIterator(util.BytesPrefix(prefix), nil)
}

// NewBatch returns a new batch instance
func (ldb *LDBDatabase) NewBatch() kvdb.Batch {
	return &ldbBatch{db: ldb.db, b: new(leveldb.Batch), keys: map[string]bool{}}
}

type ldbBatch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	keys map[string]bool
	size int
	lock sync.RWMutex
}

func (b *ldbBatch) Put(key, value []byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.b.Put(key, value)
	b.keys[string(key)] = true
	b.size += len(value)
	return nil
}

func (b *ldbBatch) Delete(key []byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.b.Delete(key)
	b.size += 1
	return nil
}

func (b *ldbBatch) Write() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.db.Write(b.b, nil)
}

func (b *ldbBatch) ValueSize() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.size
}

func (b *ldbBatch) Reset() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.b.Reset()
	b.keys = map[string]bool{}
	b.size = 0
}

func (b *ldbBatch) Exist(key []byte) bool {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.keys[string(key)]
}
