package xutils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/xuperchain/compliancecore/lib/utils"
)

// 根目录环境变量，优先级高于配置文件
const XEnvVarRootPath = "X_ROOT_PATH"

func GetXRootPath() string {
	rtPath := os.Getenv(XEnvVarRootPath)
	if rtPath != "" && utils.FileIsExist(rtPath) {
		return rtPath
	}

	return ""
}

func GetCurRootDir() string {
	return filepath.Dir(utils.GetCurExecDir())
}

func GetCurFileDir() string {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return ""
	}
	return filepath.Dir(file)
}
