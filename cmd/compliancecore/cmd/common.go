package cmd

import (
	"fmt"

	"github.com/xuperchain/compliancecore/kernel/common/xconfig"
	"github.com/xuperchain/compliancecore/kernel/engines/complianceos"
)

// openEngine 加载环境配置并启动引擎，conf为空时使用缺省环境配置
func openEngine(envCfgPath string) (*complianceos.Engine, error) {
	envConf, err := loadEnvConf(envCfgPath)
	if err != nil {
		return nil, err
	}

	engine, err := complianceos.NewEngine(envConf)
	if err != nil {
		return nil, fmt.Errorf("start engine failed.err:%v", err)
	}
	return engine, nil
}

func loadEnvConf(envCfgPath string) (*xconfig.EnvConf, error) {
	if envCfgPath == "" {
		return xconfig.GetDefEnvConf(), nil
	}
	return xconfig.LoadEnvConf(envCfgPath)
}
