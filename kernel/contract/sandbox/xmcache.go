package sandbox

import (
	"errors"

	"github.com/xuperchain/compliancecore/kernel/contract"
	"github.com/xuperchain/compliancecore/kernel/ledger"
)

var (
	// ErrHasDel is returned when key was marked as del
	ErrHasDel = errors.New("key has been mark as del")
	// ErrNotFound is returned when key is not found
	ErrNotFound = errors.New("key not found")
)

var (
	_ contract.StateSandbox = (*XMCache)(nil)
)

// XMCache 合约调用的状态沙盒。所有读写先落在内存缓存，
// 调用全部成功后由引擎通过RWSet一次性提交，失败则整体丢弃
type XMCache struct {
	// 读到过的数据: bucket -> {k1:v1, k2:v2}
	inputsCache *MemXModel
	// 写过的数据
	outputsCache *MemXModel

	model ledger.XMReader

	events []*contract.Event
}

// NewXModelCache new an instance of XModel Cache
func NewXModelCache(model ledger.XMReader) *XMCache {
	return &XMCache{
		model:        model,
		inputsCache:  NewMemXModel(),
		outputsCache: NewMemXModel(),
	}
}

// Get 读取一个key的值
func (xc *XMCache) Get(bucket string, key []byte) ([]byte, error) {
	// Level1: get from outputsCache
	data, err := xc.getFromOuputsCache(bucket, key)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	if err == nil {
		return data.PureData.Value, nil
	}

	// Level2: get and set from inputsCache
	// 下层读不到时直接返回ErrNotFound
	verData, err := xc.getAndSetFromInputsCache(bucket, key)
	if err != nil {
		return nil, err
	}
	if IsDelFlag(verData.GetPureData().GetValue()) {
		return nil, ErrHasDel
	}
	return verData.GetPureData().GetValue(), nil
}

// Level1 读取，从outputsCache中读取
func (xc *XMCache) getFromOuputsCache(bucket string, key []byte) (*ledger.VersionedData, error) {
	data, err := xc.outputsCache.Get(bucket, key)
	if err != nil {
		return nil, err
	}

	if IsDelFlag(data.PureData.Value) {
		return nil, ErrHasDel
	}
	return data, nil
}

// Level2 读取，从inputsCache中读取，读取不到会更深一层次从model里读取，并将内容填充到读集
func (xc *XMCache) getAndSetFromInputsCache(bucket string, key []byte) (*ledger.VersionedData, error) {
	data, err := xc.inputsCache.Get(bucket, key)
	if err == nil {
		return data, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	data, err = xc.model.Get(bucket, key)
	if err != nil {
		return nil, err
	}
	xc.inputsCache.Put(bucket, key, data)
	return data, nil
}

// Put put a pair of <key, value> into XModel Cache
func (xc *XMCache) Put(bucket string, key []byte, value []byte) error {
	_, err := xc.getFromOuputsCache(bucket, key)
	if err != nil && err != ErrNotFound && err != ErrHasDel {
		return err
	}

	val := &ledger.VersionedData{
		PureData: &ledger.PureData{
			Key:    key,
			Value:  value,
			Bucket: bucket,
		},
	}
	// put 前先强制get一下，保证读集覆盖写集
	xc.Get(bucket, key)
	return xc.outputsCache.Put(bucket, key, val)
}

// Del delete one key from outPutCache, marked its value as `DelFlag`
func (xc *XMCache) Del(bucket string, key []byte) error {
	return xc.Put(bucket, key, []byte(DelFlag))
}

// Select select all kv from a bucket, can set key range, left closed, right opened
func (xc *XMCache) Select(bucket string, startKey []byte, endKey []byte) (contract.Iterator, error) {
	return xc.newXModelCacheIterator(bucket, startKey, endKey)
}

// newXModelCacheIterator new an instance of XModel Cache iterator
func (xc *XMCache) newXModelCacheIterator(bucket string, startKey []byte, endKey []byte) (contract.Iterator, error) {
	iter, _ := xc.outputsCache.Select(bucket, startKey, endKey)
	outputIter := iter

	iter, _ = xc.inputsCache.Select(bucket, startKey, endKey)
	inputIter := newStripDelIterator(iter)

	backendIter, err := xc.model.Select(bucket, startKey, endKey)
	if err != nil {
		return nil, err
	}
	backendIter = newStripDelIterator(
		newRsetIterator(backendIter, xc),
	)

	// 优先级顺序 outputIter -> inputIter -> backendIter
	// 意味着如果一个key在三个迭代器里面同时出现，优先级高的会覆盖优先级底的
	multiIter := newMultiIterator(inputIter, backendIter)
	multiIter = newMultiIterator(outputIter, multiIter)
	return newContractIterator(multiIter), nil
}

// RWSet get read/write sets
func (xc *XMCache) RWSet() *contract.RWSet {
	readSet := xc.getReadSets()
	writeSet := xc.getWriteSets()

	return &contract.RWSet{
		RSet: readSet,
		WSet: writeSet,
	}
}

func (xc *XMCache) getReadSets() []*ledger.VersionedData {
	var readSets []*ledger.VersionedData
	iter := xc.inputsCache.NewIterator()
	defer iter.Close()
	for iter.Next() {
		val := iter.Value()
		readSets = append(readSets, val)
	}
	return readSets
}

func (xc *XMCache) getWriteSets() []*ledger.PureData {
	var writeSets []*ledger.PureData
	iter := xc.outputsCache.NewIterator()
	defer iter.Close()
	for iter.Next() {
		val := iter.Value()
		writeSets = append(writeSets, val.PureData)
	}
	return writeSets
}

// AddEvent add audit event to xmodel cache
func (xc *XMCache) AddEvent(events ...*contract.Event) {
	xc.events = append(xc.events, events...)
}

// Events 本次调用暂存的审计事件，发起顺序排列
func (xc *XMCache) Events() []*contract.Event {
	return xc.events
}
