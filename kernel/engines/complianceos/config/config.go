package config

import (
	"fmt"

	"github.com/xuperchain/compliancecore/lib/storage/kvdb"
	"github.com/xuperchain/compliancecore/lib/utils"

	"github.com/spf13/viper"
)

const (
	DefaultLedgerName = "compliance"
)

type EngineConf struct {
	// ledger name
	LedgerName string `yaml:"ledgerName,omitempty"`
	// 管理员地址，部署时指定，引擎启动的必填项
	Admin string `yaml:"admin,omitempty"`
	// kv存储引擎类型: leveldb | badger
	KVEngineType string `yaml:"kvEngineType,omitempty"`
	// kv存储内存缓存大小(MB)
	MemCacheSize int `yaml:"memCacheSize,omitempty"`
	// kv存储文件句柄缓存个数
	FileHandlersCacheSize int `yaml:"fileHandlersCacheSize,omitempty"`
}

func LoadEngineConf(cfgFile string) (*EngineConf, error) {
	cfg := GetDefEngineConf()
	err := cfg.loadConf(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load engine config failed.err:%s", err)
	}

	return cfg, nil
}

func GetDefEngineConf() *EngineConf {
	return &EngineConf{
		LedgerName:   DefaultLedgerName,
		KVEngineType: kvdb.KVEngineTypeLDB,
	}
}

func (t *EngineConf) loadConf(cfgFile string) error {
	if cfgFile == "" || !utils.FileIsExist(cfgFile) {
		return fmt.Errorf("config file set error.path:%s", cfgFile)
	}

	viperObj := viper.New()
	viperObj.SetConfigFile(cfgFile)
	err := viperObj.ReadInConfig()
	if err != nil {
		return fmt.Errorf("read config failed.path:%s,err:%v", cfgFile, err)
	}

	if err = viperObj.Unmarshal(t); err != nil {
		return fmt.Errorf("unmatshal config failed.path:%s,err:%v", cfgFile, err)
	}

	return nil
}
