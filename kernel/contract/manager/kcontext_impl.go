package manager

import (
	"github.com/xuperchain/compliancecore/kernel/contract"
)

type kcontextImpl struct {
	ctxCfg *contract.ContextConfig

	// 合约调用参数
	args map[string][]byte

	contract.StateSandbox
}

func newKContext(ctxCfg *contract.ContextConfig, args map[string][]byte) *kcontextImpl {
	return &kcontextImpl{
		ctxCfg:       ctxCfg,
		args:         args,
		StateSandbox: ctxCfg.State,
	}
}

func (k *kcontextImpl) Args() map[string][]byte {
	return k.args
}

func (k *kcontextImpl) Initiator() string {
	return k.ctxCfg.Initiator
}

func (k *kcontextImpl) AuthRequire() []string {
	return k.ctxCfg.AuthRequire
}
