package manager

import (
	"fmt"

	"github.com/xuperchain/compliancecore/kernel/contract"
)

type contextImpl struct {
	ctxCfg   *contract.ContextConfig
	registry contract.KernRegistry
	released bool
}

func (c *contextImpl) Invoke(method string, args map[string][]byte) (*contract.Response, error) {
	if c.released {
		return nil, fmt.Errorf("context for %s has been released", c.ctxCfg.ContractName)
	}
	handler, err := c.registry.GetKernMethod(c.ctxCfg.ContractName, method)
	if err != nil {
		return nil, err
	}
	kctx := newKContext(c.ctxCfg, args)
	return handler(kctx)
}

func (c *contextImpl) Release() error {
	c.released = true
	return nil
}
