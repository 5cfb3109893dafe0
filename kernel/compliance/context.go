package compliance

import (
	"fmt"

	"github.com/xuperchain/compliancecore/kernel/common/xcontext"
	"github.com/xuperchain/compliancecore/kernel/contract"
	"github.com/xuperchain/compliancecore/kernel/ledger"
	"github.com/xuperchain/compliancecore/lib/logs"
	"github.com/xuperchain/compliancecore/lib/timer"
)

type ComplianceCtx struct {
	// 基础上下文
	xcontext.BaseCtx

	BcName string
	// 管理员地址，部署时确定
	Admin string

	Contract contract.Manager
	// 已提交状态的只读视图，供查询接口直接读取
	Ledger ledger.XMReader
}

func NewComplianceCtx(bcName, admin string, contractMgr contract.Manager,
	reader ledger.XMReader, log logs.Logger) (*ComplianceCtx, error) {
	if bcName == "" || admin == "" || contractMgr == nil {
		return nil, fmt.Errorf("new compliance ctx failed because param error")
	}

	ctx := new(ComplianceCtx)
	ctx.XLog = log
	ctx.Timer = timer.NewXTimer()
	ctx.BcName = bcName
	ctx.Admin = admin
	ctx.Contract = contractMgr
	ctx.Ledger = reader

	return ctx, nil
}
