package sandbox

import (
	"bytes"
	"errors"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/xuperchain/compliancecore/kernel/contract"
	"github.com/xuperchain/compliancecore/kernel/ledger"
)

// MemXModel 基于红黑树的内存版XMReader，沙盒读写缓存和测试用
type MemXModel struct {
	tree *redblacktree.Tree
}

func NewMemXModel() *MemXModel {
	tree := redblacktree.NewWith(treeCompare)
	return &MemXModel{
		tree: tree,
	}
}

// XMReaderFromRWSet 用读集构造一个只读的XMReader，重放验证用
func XMReaderFromRWSet(rwset *contract.RWSet) ledger.XMReader {
	m := NewMemXModel()
	for _, r := range rwset.RSet {
		m.Put(r.PureData.Bucket, r.PureData.Key, r)
	}
	return m
}

// Get 读取一个key的值，返回的value就是有版本的data
func (m *MemXModel) Get(bucket string, key []byte) (*ledger.VersionedData, error) {
	buKey := makeRawKey(bucket, key)
	v, ok := m.tree.Get(buKey)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*ledger.VersionedData), nil
}

func (m *MemXModel) Put(bucket string, key []byte, value *ledger.VersionedData) error {
	buKey := makeRawKey(bucket, key)
	m.tree.Put(buKey, value)
	return nil
}

// Select 扫描一个bucket中所有的kv, 调用者可以设置key区间[startKey, endKey)
func (m *MemXModel) Select(bucket string, startKey []byte, endKey []byte) (ledger.XMIterator, error) {
	if compareBytes(startKey, endKey) >= 0 {
		return nil, errors.New("bad select range")
	}
	rawStartKey := makeRawKey(bucket, startKey)
	rawEndKey := makeRawKey(bucket, endKey)
	return newTreeIterator(m.tree, rawStartKey, rawEndKey), nil
}

// NewIterator 全量迭代，生成读写集用
func (m *MemXModel) NewIterator() ledger.XMIterator {
	return newTreeIterator(m.tree, nil, nil)
}

// treeIterator 把tree的Iterator转换成XMIterator
type treeIterator struct {
	tree  *redblacktree.Tree
	iter  *redblacktree.Iterator
	end   []byte
	valid bool
}

func newTreeIterator(tree *redblacktree.Tree, start, end []byte) ledger.XMIterator {
	if start == nil {
		iter := tree.Iterator()
		return &treeIterator{
			tree: tree,
			iter: &iter,
			end:  end,
		}
	}
	startNode, ok := tree.Ceiling(start)
	if !ok {
		return new(treeIterator)
	}
	iter := tree.IteratorAt(startNode)
	// IteratorAt定位在startNode上，回退一步让第一次Next落到startNode
	iter.Prev()
	return &treeIterator{
		tree: tree,
		iter: &iter,
		end:  end,
	}
}

func (t *treeIterator) Next() bool {
	if t.iter == nil {
		return false
	}
	if !t.iter.Next() {
		t.valid = false
		return false
	}
	if t.end == nil {
		t.valid = true
		return true
	}
	key := t.iter.Key()
	t.valid = t.tree.Comparator(key, t.end) < 0
	return t.valid
}

func (t *treeIterator) Key() []byte {
	if t.iter == nil || !t.valid {
		return nil
	}
	return t.iter.Key().([]byte)
}

func (t *treeIterator) Value() *ledger.VersionedData {
	if t.iter == nil || !t.valid {
		return nil
	}
	return t.iter.Value().(*ledger.VersionedData)
}

func (t *treeIterator) Error() error {
	return nil
}

func (t *treeIterator) Close() {
	t.iter = nil
}

func treeCompare(a, b interface{}) int {
	ka := a.([]byte)
	kb := b.([]byte)
	return bytes.Compare(ka, kb)
}
