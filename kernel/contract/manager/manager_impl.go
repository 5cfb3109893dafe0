package manager

import (
	"errors"

	"github.com/xuperchain/compliancecore/kernel/contract"
	"github.com/xuperchain/compliancecore/kernel/contract/sandbox"
)

type managerImpl struct {
	cfg      *contract.ManagerConfig
	registry registryImpl
}

func newManagerImpl(cfg *contract.ManagerConfig) (contract.Manager, error) {
	if cfg == nil {
		return nil, errors.New("nil manager config")
	}
	m := &managerImpl{
		cfg: cfg,
	}
	return m, nil
}

func (m *managerImpl) NewContext(cfg *contract.ContextConfig) (contract.Context, error) {
	if cfg.ContractName == "" {
		return nil, errors.New("empty contract name")
	}
	if cfg.State == nil {
		return nil, errors.New("nil state sandbox")
	}
	return &contextImpl{
		ctxCfg:   cfg,
		registry: &m.registry,
	}, nil
}

func (m *managerImpl) NewStateSandbox(cfg *contract.SandboxConfig) (contract.StateSandbox, error) {
	if cfg.XMReader == nil {
		return nil, errors.New("nil state reader")
	}
	return sandbox.NewXModelCache(cfg.XMReader), nil
}

func (m *managerImpl) GetKernRegistry() contract.KernRegistry {
	return &m.registry
}

func init() {
	contract.Register("default", newManagerImpl)
}
