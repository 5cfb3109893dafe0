package xconfig

import (
	"path/filepath"
	"testing"

	"github.com/xuperchain/compliancecore/kernel/common/xutils"
)

func TestLoadEnvConf(t *testing.T) {
	envCfg, err := LoadEnvConf(getConfFile())
	if err != nil {
		t.Fatal(err)
	}

	if envCfg.ConfDir != "conf" {
		t.Fatalf("unexpected conf dir %s", envCfg.ConfDir)
	}
	if !envCfg.MetricSwitch {
		t.Fatal("expect metric switch on")
	}
	if envCfg.GenConfFilePath(envCfg.LogConf) !=
		filepath.Join(envCfg.RootPath, "conf", "log.yaml") {
		t.Fatal("bad log conf path")
	}
}

func getConfFile() string {
	dir := xutils.GetCurFileDir()
	return filepath.Join(dir, "conf/env.yaml")
}
