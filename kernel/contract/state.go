package contract

import (
	"github.com/xuperchain/compliancecore/kernel/ledger"
)

type SandboxConfig struct {
	XMReader ledger.XMReader
}

// Iterator iterates over key/value pairs in key order
type Iterator interface {
	Key() []byte
	Value() []byte
	Next() bool
	Error() error
	// Iterator 必须在使用完毕后关闭
	Close()
}

// XMState 对合约暴露的状态读写接口，Get和Select方法得到的不是VersionedData，而是[]byte
type XMState interface {
	Get(bucket string, key []byte) ([]byte, error)
	// 扫描一个bucket中所有的kv, 调用者可以设置key区间[startKey, endKey)
	Select(bucket string, startKey []byte, endKey []byte) (Iterator, error)
	Put(bucket string, key, value []byte) error
	Del(bucket string, key []byte) error
}

// Event 合约执行中产生的审计事件，随本次调用一起提交或丢弃
type Event struct {
	Contract string `json:"contract"`
	Name     string `json:"name"`
	Body     []byte `json:"body"`
}

// EventState 审计事件暂存接口
type EventState interface {
	AddEvent(events ...*Event)
	Events() []*Event
}

// StateSandbox 在沙盒环境里面执行状态修改操作，最终生成读写集
type StateSandbox interface {
	XMState
	EventState
	RWSet() *RWSet
}

type RWSet struct {
	RSet []*ledger.VersionedData
	WSet []*ledger.PureData
}
