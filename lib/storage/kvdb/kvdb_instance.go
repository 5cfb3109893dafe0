package kvdb

import (
	"errors"
	"sync"
)

// ErrNotFound 各存储引擎统一把key不存在归一化成该错误
var ErrNotFound = errors.New("key not found")

// KVParameter structure for kv instance parameters
type KVParameter struct {
	DBPath                string
	KVEngineType          string
	MemCacheSize          int
	FileHandlersCacheSize int
}

const (
	KVEngineTypeLDB    = "leveldb"
	KVEngineTypeBadger = "badger"
)

var (
	servsMu  sync.RWMutex
	services = make(map[string]NewStorageFunc)
)

type NewStorageFunc func(*KVParameter) (Database, error)

func Register(name string, f NewStorageFunc) {
	servsMu.Lock()
	defer servsMu.Unlock()

	if f == nil {
		panic("storage: Register new func is nil")
	}
	if _, dup := services[name]; dup {
		panic("storage: Register called twice for func " + name)
	}
	services[name] = f
}

func CreateKVInstance(kvParam *KVParameter) (Database, error) {
	servsMu.RLock()
	defer servsMu.RUnlock()

	if f, ok := services[kvParam.KVEngineType]; ok {
		instance, err := f(kvParam)
		if err != nil {
			return nil, err
		}
		return instance, nil
	}

	return nil, errors.New("kv engine type not registered: " + kvParam.KVEngineType)
}

// GetDBPath return the value of DBPath
func (param *KVParameter) GetDBPath() string {
	return param.DBPath
}

// GetKVEngineType return the value of KVEngineType
func (param *KVParameter) GetKVEngineType() string {
	return param.KVEngineType
}

// GetMemCacheSize return the value of MemCacheSize
func (param *KVParameter) GetMemCacheSize() int {
	if param.MemCacheSize <= 0 {
		return 128
	}
	return param.MemCacheSize
}

// GetFileHandlersCacheSize return the value of FileHandlersCacheSize
func (param *KVParameter) GetFileHandlersCacheSize() int {
	if param.FileHandlersCacheSize <= 0 {
		return 1024
	}
	return param.FileHandlersCacheSize
}
