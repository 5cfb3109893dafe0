package compliance

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/xuperchain/compliancecore/kernel/compliance/utils"
	"github.com/xuperchain/compliancecore/kernel/contract"
	"github.com/xuperchain/compliancecore/kernel/contract/sandbox"
)

// Asset 凭证资产定义，总量固定为1且不可增发
type Asset struct {
	Id       uint64 `json:"id"`
	Name     string `json:"name"`
	BatchId  string `json:"batch_id"`
	Total    uint64 `json:"total"`
	Decimals uint32 `json:"decimals"`
}

// mintCertificate 为批次铸造唯一认证凭证，返回新分配的凭证号。
// 发号器和资产定义写入同一个沙盒，与本次状态变更一起提交或一起丢弃
func mintCertificate(ctx contract.KContext, batchId string) (uint64, error) {
	lastId := uint64(0)
	buf, err := ctx.Get(utils.GetAssetMetaBucket(), utils.GetLastAssetIdKey())
	if err != nil && err != sandbox.ErrNotFound {
		return 0, errors.Wrap(err, "read asset id allocator")
	}
	if err == nil {
		lastId = utils.DecU64(buf)
	}
	newId := lastId + 1

	asset := &Asset{
		Id:       newId,
		Name:     utils.MakeAssetName(batchId),
		BatchId:  batchId,
		Total:    1,
		Decimals: 0,
	}
	val, err := json.Marshal(asset)
	if err != nil {
		return 0, errors.Wrap(err, "marshal asset")
	}

	err = ctx.Put(utils.GetAssetMetaBucket(), utils.GetLastAssetIdKey(), utils.EncU64(newId))
	if err != nil {
		return 0, errors.Wrap(err, "write asset id allocator")
	}
	err = ctx.Put(utils.GetAssetMetaBucket(), utils.GetAssetDefKey(newId), val)
	if err != nil {
		return 0, errors.Wrap(err, "write asset definition")
	}

	return newId, nil
}
