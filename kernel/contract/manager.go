package contract

import (
	"fmt"
	"sync"

	"github.com/xuperchain/compliancecore/kernel/ledger"
)

var (
	managerMutex sync.Mutex
	managers     = make(map[string]NewManagerFunc)
)

type NewManagerFunc func(cfg *ManagerConfig) (Manager, error)

type Manager interface {
	NewContext(cfg *ContextConfig) (Context, error)
	NewStateSandbox(cfg *SandboxConfig) (StateSandbox, error)
	GetKernRegistry() KernRegistry
}

type ManagerConfig struct {
	Basedir  string
	BCName   string
	XMReader ledger.XMReader
}

func Register(name string, f NewManagerFunc) {
	managerMutex.Lock()
	defer managerMutex.Unlock()

	if _, exists := managers[name]; exists {
		panic(fmt.Sprintf("contract manager of type %s exists", name))
	}
	managers[name] = f
}

func CreateManager(name string, cfg *ManagerConfig) (Manager, error) {
	mgfunc, ok := managers[name]
	if !ok {
		return nil, fmt.Errorf("contract manager of type %s not exists", name)
	}
	return mgfunc(cfg)
}
