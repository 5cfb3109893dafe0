package state

import (
	"github.com/pkg/errors"

	"github.com/xuperchain/compliancecore/kernel/contract"
	"github.com/xuperchain/compliancecore/kernel/contract/sandbox"
	"github.com/xuperchain/compliancecore/kernel/ledger"
	"github.com/xuperchain/compliancecore/lib/logs"
	"github.com/xuperchain/compliancecore/lib/metrics"
	"github.com/xuperchain/compliancecore/lib/storage/kvdb"
)

const (
	// 状态数据表前缀
	StateTablePrefix = "S"
	// 审计事件表前缀，按序号递增追加
	EventTablePrefix = "E"
	// 元数据表前缀
	MetaTablePrefix = "M"
)

var lastEventSeqKey = []byte("last_event_seq")

// XModel 基于kv存储的已提交状态模型，读写集整体落库
type XModel struct {
	bcName     string
	stateDB    kvdb.Database
	stateTable kvdb.Database
	eventTable kvdb.Database
	metaTable  kvdb.Database
	logger     logs.Logger

	lastEventSeq uint64
}

func NewXModel(bcName string, stateDB kvdb.Database, logger logs.Logger) (*XModel, error) {
	xm := &XModel{
		bcName:     bcName,
		stateDB:    stateDB,
		stateTable: kvdb.NewTable(stateDB, StateTablePrefix),
		eventTable: kvdb.NewTable(stateDB, EventTablePrefix),
		metaTable:  kvdb.NewTable(stateDB, MetaTablePrefix),
		logger:     logger,
	}

	seq, err := xm.loadLastEventSeq()
	if err != nil {
		return nil, errors.Wrap(err, "load event sequence")
	}
	xm.lastEventSeq = seq

	return xm, nil
}

// Get 读取一个key的已提交值，不存在返回sandbox.ErrNotFound
func (s *XModel) Get(bucket string, key []byte) (*ledger.VersionedData, error) {
	rawKey := sandbox.MakeRawKey(bucket, key)
	val, err := s.stateTable.Get(rawKey)
	if err == kvdb.ErrNotFound {
		return nil, sandbox.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ledger.VersionedData{
		PureData: &ledger.PureData{
			Bucket: bucket,
			Key:    key,
			Value:  val,
		},
	}, nil
}

// Select 扫描一个bucket内[startKey, endKey)的已提交kv
func (s *XModel) Select(bucket string, startKey []byte, endKey []byte) (ledger.XMIterator, error) {
	iter := s.stateTable.NewIteratorWithRange(
		sandbox.MakeRawKey(bucket, startKey),
		sandbox.MakeRawKey(bucket, endKey))
	return &xmIterator{iter: iter, prefixLen: len(StateTablePrefix)}, nil
}

// CommitRWSet 把一次调用的写集和审计事件用一个batch原子落库
func (s *XModel) CommitRWSet(rwSet *contract.RWSet, events []*contract.Event) error {
	batch := s.stateDB.NewBatch()
	defer batch.Reset()

	for _, pd := range rwSet.WSet {
		rawKey := sandbox.MakeRawKey(pd.GetBucket(), pd.GetKey())
		err := batch.Put(append([]byte(StateTablePrefix), rawKey...), pd.GetValue())
		if err != nil {
			return errors.Wrap(err, "stage state write")
		}
	}

	seq := s.lastEventSeq
	for _, event := range events {
		seq++
		buf, err := encodeEvent(seq, event)
		if err != nil {
			return err
		}
		err = batch.Put(append([]byte(EventTablePrefix), eventSeqKey(seq)...), buf)
		if err != nil {
			return errors.Wrap(err, "stage event write")
		}
	}
	if seq != s.lastEventSeq {
		err := batch.Put(append([]byte(MetaTablePrefix), lastEventSeqKey...), encodeSeq(seq))
		if err != nil {
			return errors.Wrap(err, "stage event sequence")
		}
	}

	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit batch")
	}
	s.lastEventSeq = seq

	metrics.StateCommitCounter.WithLabelValues(s.bcName).Inc()
	for _, event := range events {
		metrics.StateEventCounter.WithLabelValues(s.bcName, event.Contract).Inc()
	}
	if s.logger != nil {
		s.logger.Debug("state committed", "writes", len(rwSet.WSet), "events", len(events))
	}
	return nil
}

func (s *XModel) loadLastEventSeq() (uint64, error) {
	val, err := s.metaTable.Get(lastEventSeqKey)
	if err == kvdb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return decodeSeq(val), nil
}

// xmIterator 把kvdb迭代器适配成XMIterator，Key返回去掉表前缀的裸key
type xmIterator struct {
	iter      kvdb.Iterator
	prefixLen int
}

func (t *xmIterator) rawKey() []byte {
	k := t.iter.Key()
	if len(k) < t.prefixLen {
		return nil
	}
	return k[t.prefixLen:]
}

func (t *xmIterator) Key() []byte {
	return t.rawKey()
}

func (t *xmIterator) Value() *ledger.VersionedData {
	bucket, key, err := sandbox.ParseRawKey(t.rawKey())
	if err != nil {
		return nil
	}
	return &ledger.VersionedData{
		PureData: &ledger.PureData{
			Bucket: bucket,
			Key:    key,
			Value:  t.iter.Value(),
		},
	}
}

func (t *xmIterator) Next() bool {
	return t.iter.Next()
}

func (t *xmIterator) Error() error {
	return t.iter.Error()
}

func (t *xmIterator) Close() {
	t.iter.Release()
}
