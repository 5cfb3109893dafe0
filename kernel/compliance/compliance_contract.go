package compliance

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/xuperchain/compliancecore/kernel/compliance/utils"
	"github.com/xuperchain/compliancecore/kernel/contract"
	"github.com/xuperchain/compliancecore/kernel/contract/sandbox"
)

type KernMethod struct {
	BcName string
	// 管理员身份由部署环境固定下来，不落库
	Admin string
}

func NewKernContractMethod(bcName, admin string) *KernMethod {
	t := &KernMethod{
		BcName: bcName,
		Admin:  admin,
	}
	return t
}

// AssignRole 管理员给账户分配厂商或质检员角色
func (t *KernMethod) AssignRole(ctx contract.KContext) (*contract.Response, error) {
	caller := ctx.Initiator()
	if caller != t.Admin {
		return nil, errors.Wrap(ErrUnauthorized, "assign_role requires administrator")
	}

	args := ctx.Args()
	account := string(args["account"])
	if account == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "account is empty")
	}
	role, err := strconv.ParseUint(string(args["role"]), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "parse role: %v", err)
	}
	if !utils.IsValidRole(role) {
		return nil, errors.Wrapf(ErrInvalidArgument, "role %d out of range", role)
	}

	err = ctx.Put(utils.GetRoleBucket(), []byte(account), utils.EncU64(role))
	if err != nil {
		return nil, err
	}
	emitAuditEvent(ctx, "assign_role", account)

	return respondU64(role), nil
}

// CreateBatch 厂商登记一个新批次，初始状态为Created
func (t *KernMethod) CreateBatch(ctx contract.KContext) (*contract.Response, error) {
	caller := ctx.Initiator()
	role, err := t.roleOf(ctx, caller)
	if err != nil {
		return nil, err
	}
	if role != utils.RoleVendor {
		return nil, errors.Wrap(ErrUnauthorized, "create_batch requires vendor role")
	}

	batchId := string(ctx.Args()["batch_id"])
	if !utils.IsValidBatchId(batchId) {
		return nil, errors.Wrapf(ErrInvalidArgument, "bad batch id %q", batchId)
	}

	_, err = ctx.Get(utils.GetBatchBucket(), []byte(batchId))
	if err == nil {
		return nil, errors.Wrapf(ErrAlreadyExists, "batch %s", batchId)
	}
	if err != sandbox.ErrNotFound {
		return nil, err
	}

	err = ctx.Put(utils.GetBatchBucket(), []byte(batchId), utils.EncU64(utils.StatusCreated))
	if err != nil {
		return nil, err
	}
	// 批次创建和厂商索引追加在同一个沙盒里，保证两者要么都落库要么都不落
	err = t.appendVendorBatch(ctx, caller, batchId)
	if err != nil {
		return nil, err
	}
	emitAuditEvent(ctx, "create_batch", batchId)

	return respondU64(utils.StatusCreated), nil
}

// ApproveBatch 质检员把批次从Created推进到Approved
func (t *KernMethod) ApproveBatch(ctx contract.KContext) (*contract.Response, error) {
	role, err := t.roleOf(ctx, ctx.Initiator())
	if err != nil {
		return nil, err
	}
	if role != utils.RoleInspector {
		return nil, errors.Wrap(ErrUnauthorized, "approve_batch requires inspector role")
	}

	batchId := string(ctx.Args()["batch_id"])
	status, err := t.batchStatus(ctx, batchId)
	if err != nil {
		return nil, err
	}
	if status == utils.StatusNotFound {
		return nil, errors.Wrapf(ErrNotFound, "batch %s", batchId)
	}
	if status != utils.StatusCreated {
		return nil, errors.Wrapf(ErrInvalidTransition, "batch %s in state %d", batchId, status)
	}

	err = ctx.Put(utils.GetBatchBucket(), []byte(batchId), utils.EncU64(utils.StatusApproved))
	if err != nil {
		return nil, err
	}
	emitAuditEvent(ctx, "approve_batch", batchId)

	return respondU64(utils.StatusApproved), nil
}

// CertifyBatch 管理员或质检员把批次从Approved推进到Certified，并铸造认证凭证
func (t *KernMethod) CertifyBatch(ctx contract.KContext) (*contract.Response, error) {
	caller := ctx.Initiator()
	role, err := t.roleOf(ctx, caller)
	if err != nil {
		return nil, err
	}
	if role != utils.RoleAdmin && role != utils.RoleInspector {
		return nil, errors.Wrap(ErrUnauthorized, "certify_batch requires administrator or inspector")
	}

	batchId := string(ctx.Args()["batch_id"])
	status, err := t.batchStatus(ctx, batchId)
	if err != nil {
		return nil, err
	}
	if status == utils.StatusNotFound {
		return nil, errors.Wrapf(ErrNotFound, "batch %s", batchId)
	}
	if status != utils.StatusApproved {
		return nil, errors.Wrapf(ErrInvalidTransition, "batch %s in state %d", batchId, status)
	}

	err = ctx.Put(utils.GetBatchBucket(), []byte(batchId), utils.EncU64(utils.StatusCertified))
	if err != nil {
		return nil, err
	}
	assetId, err := mintCertificate(ctx, batchId)
	if err != nil {
		return nil, errors.Wrapf(ErrMintingFailure, "mint for batch %s: %v", batchId, err)
	}
	err = ctx.Put(utils.GetAssetBucket(), []byte(batchId), utils.EncU64(assetId))
	if err != nil {
		return nil, err
	}
	emitAuditEvent(ctx, "certify_batch", batchId)

	return respondU64(utils.StatusCertified), nil
}

// GetRole 查询账户角色，管理员返回0，未分配返回99
func (t *KernMethod) GetRole(ctx contract.KContext) (*contract.Response, error) {
	account := string(ctx.Args()["account"])
	role, err := t.roleOf(ctx, account)
	if err != nil {
		return nil, err
	}
	return respondU64(role), nil
}

// GetBatchStatus 查询批次状态，不存在返回99
func (t *KernMethod) GetBatchStatus(ctx contract.KContext) (*contract.Response, error) {
	status, err := t.batchStatus(ctx, string(ctx.Args()["batch_id"]))
	if err != nil {
		return nil, err
	}
	return respondU64(status), nil
}

// GetBatchAsset 查询批次的凭证号，未认证返回0
func (t *KernMethod) GetBatchAsset(ctx contract.KContext) (*contract.Response, error) {
	batchId := string(ctx.Args()["batch_id"])
	buf, err := ctx.Get(utils.GetAssetBucket(), []byte(batchId))
	if err == sandbox.ErrNotFound {
		return respondU64(0), nil
	}
	if err != nil {
		return nil, err
	}
	return respondU64(utils.DecU64(buf)), nil
}

// GetVendorBatches 查询厂商创建的批次列表，按创建顺序用|连接
func (t *KernMethod) GetVendorBatches(ctx contract.KContext) (*contract.Response, error) {
	vendor := string(ctx.Args()["vendor"])
	raw, err := t.vendorBatchList(ctx, vendor)
	if err != nil {
		return nil, err
	}
	return &contract.Response{
		Status:  utils.StatusOK,
		Message: "success",
		Body:    []byte(raw),
	}, nil
}

func (t *KernMethod) roleOf(ctx contract.KContext, account string) (uint64, error) {
	if account == t.Admin {
		return utils.RoleAdmin, nil
	}
	buf, err := ctx.Get(utils.GetRoleBucket(), []byte(account))
	if err == sandbox.ErrNotFound {
		return utils.RoleNone, nil
	}
	if err != nil {
		return utils.RoleNone, err
	}
	return utils.DecU64(buf), nil
}

func (t *KernMethod) batchStatus(ctx contract.KContext, batchId string) (uint64, error) {
	buf, err := ctx.Get(utils.GetBatchBucket(), []byte(batchId))
	if err == sandbox.ErrNotFound {
		return utils.StatusNotFound, nil
	}
	if err != nil {
		return 0, err
	}
	return utils.DecU64(buf), nil
}

func (t *KernMethod) vendorBatchList(ctx contract.KContext, vendor string) (string, error) {
	buf, err := ctx.Get(utils.GetVendorBucket(), []byte(vendor))
	if err == sandbox.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func (t *KernMethod) appendVendorBatch(ctx contract.KContext, vendor, batchId string) error {
	raw, err := t.vendorBatchList(ctx, vendor)
	if err != nil {
		return err
	}
	raw = utils.AppendBatchList(raw, batchId)
	return ctx.Put(utils.GetVendorBucket(), []byte(vendor), []byte(raw))
}

// emitAuditEvent 审计事件随沙盒一起提交，排在同一调用的状态写之后
func emitAuditEvent(ctx contract.KContext, name, subject string) {
	body := fmt.Sprintf("%s|%s|%s", name,
		hex.EncodeToString([]byte(subject)),
		hex.EncodeToString([]byte(ctx.Initiator())))
	ctx.AddEvent(&contract.Event{
		Contract: utils.SubModName,
		Name:     name,
		Body:     []byte(body),
	})
}

func respondU64(v uint64) *contract.Response {
	return &contract.Response{
		Status:  utils.StatusOK,
		Message: "success",
		Body:    []byte(strconv.FormatUint(v, 10)),
	}
}
