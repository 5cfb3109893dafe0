package compliance

import (
	"fmt"

	"github.com/xuperchain/compliancecore/kernel/compliance/utils"
	"github.com/xuperchain/compliancecore/kernel/contract"
	"github.com/xuperchain/compliancecore/kernel/contract/sandbox"
)

// Manager 负责注册合规内核合约，并提供已提交状态的只读查询
type Manager struct {
	Ctx *ComplianceCtx
}

func NewComplianceManager(ctx *ComplianceCtx) (*Manager, error) {
	if ctx == nil || ctx.Contract == nil || ctx.BcName == "" || ctx.Admin == "" {
		return nil, fmt.Errorf("compliance ctx set error")
	}

	t := NewKernContractMethod(ctx.BcName, ctx.Admin)
	register := ctx.Contract.GetKernRegistry()
	kMethods := map[string]contract.KernMethod{
		"AssignRole":       t.AssignRole,
		"CreateBatch":      t.CreateBatch,
		"ApproveBatch":     t.ApproveBatch,
		"CertifyBatch":     t.CertifyBatch,
		"GetRole":          t.GetRole,
		"GetBatchStatus":   t.GetBatchStatus,
		"GetBatchAsset":    t.GetBatchAsset,
		"GetVendorBatches": t.GetVendorBatches,
	}
	for method, f := range kMethods {
		register.RegisterKernMethod(utils.SubModName, method, f)
	}

	mg := &Manager{
		Ctx: ctx,
	}

	return mg, nil
}

// GetRole 读已提交状态查询账户角色
func (mgr *Manager) GetRole(account string) (uint64, error) {
	if account == mgr.Ctx.Admin {
		return utils.RoleAdmin, nil
	}
	val, err := mgr.getObject(utils.GetRoleBucket(), []byte(account))
	if err != nil {
		return utils.RoleNone, err
	}
	if val == nil {
		return utils.RoleNone, nil
	}
	return utils.DecU64(val), nil
}

// GetBatchStatus 读已提交状态查询批次状态
func (mgr *Manager) GetBatchStatus(batchId string) (uint64, error) {
	val, err := mgr.getObject(utils.GetBatchBucket(), []byte(batchId))
	if err != nil {
		return utils.StatusNotFound, err
	}
	if val == nil {
		return utils.StatusNotFound, nil
	}
	return utils.DecU64(val), nil
}

// GetBatchAsset 读已提交状态查询批次凭证号，未认证返回0
func (mgr *Manager) GetBatchAsset(batchId string) (uint64, error) {
	val, err := mgr.getObject(utils.GetAssetBucket(), []byte(batchId))
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, nil
	}
	return utils.DecU64(val), nil
}

// GetVendorBatches 读已提交状态查询厂商批次列表
func (mgr *Manager) GetVendorBatches(vendor string) ([]string, error) {
	val, err := mgr.getObject(utils.GetVendorBucket(), []byte(vendor))
	if err != nil {
		return nil, err
	}
	return utils.SplitBatchList(string(val)), nil
}

func (mgr *Manager) getObject(bucket string, key []byte) ([]byte, error) {
	if mgr.Ctx.Ledger == nil {
		return nil, fmt.Errorf("state reader not set")
	}
	data, err := mgr.Ctx.Ledger.Get(bucket, key)
	if err == sandbox.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query %s bucket failed.err:%v", bucket, err)
	}
	if len(data.GetPureData().GetValue()) == 0 {
		return nil, nil
	}
	return data.GetPureData().GetValue(), nil
}
