package logs

import (
	"path/filepath"
	"testing"
)

func TestLogFitter(t *testing.T) {
	cfg := GetDefLogConf()
	cfg.Console = false
	cfg.Filepath = filepath.Join(t.TempDir(), "logs")

	drv, err := OpenLog(cfg)
	if err != nil {
		t.Fatalf("open log fail.err:%v", err)
	}

	log, err := NewLogger(drv, "")
	if err != nil {
		t.Fatalf("new logger fail.err:%v", err)
	}
	if log.GetLogId() == "" {
		t.Errorf("log id empty")
	}

	log.SetCommField("chain", "compliance")
	log.Debug("test debug", "a", 1)
	log.Info("test info", "b", 2)
	log.Warn("test warn", "c", 3)
	log.Error("test error", "d", 4)
	log.Trace("test trace", "odd_value")
}

func TestNewLoggerParamCheck(t *testing.T) {
	if _, err := NewLogger(nil, "id"); err == nil {
		t.Errorf("expect error for nil driver")
	}
}
