package state

import (
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/xuperchain/compliancecore/kernel/contract"
)

// EventRecord 落库的审计事件，seq全局单调递增，只追加不修改
type EventRecord struct {
	Seq      uint64 `json:"seq"`
	Contract string `json:"contract"`
	Name     string `json:"name"`
	Body     string `json:"body"`
}

func eventSeqKey(seq uint64) []byte {
	return encodeSeq(seq)
}

func encodeSeq(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}

func decodeSeq(buf []byte) uint64 {
	if len(buf) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(buf)
}

func encodeEvent(seq uint64, event *contract.Event) ([]byte, error) {
	record := &EventRecord{
		Seq:      seq,
		Contract: event.Contract,
		Name:     event.Name,
		Body:     string(event.Body),
	}
	buf, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "marshal event")
	}
	return buf, nil
}

// QueryEvents 按序号从startSeq开始读取最多limit条审计事件，limit<=0表示不限制
func (s *XModel) QueryEvents(startSeq uint64, limit int) ([]*EventRecord, error) {
	if startSeq == 0 {
		startSeq = 1
	}
	iter := s.eventTable.NewIteratorWithRange(encodeSeq(startSeq), encodeSeq(^uint64(0)))
	defer iter.Release()

	var records []*EventRecord
	for iter.Next() {
		record := &EventRecord{}
		if err := json.Unmarshal(iter.Value(), record); err != nil {
			return nil, errors.Wrap(err, "unmarshal event")
		}
		records = append(records, record)
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

// LastEventSeq 当前已落库的最大事件序号
func (s *XModel) LastEventSeq() uint64 {
	return s.lastEventSeq
}
