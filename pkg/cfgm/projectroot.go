package cfgm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// FindProjectRoot 向上查找 go.mod 所在目录，作为相对配置路径的基准。
//
// skip 为需要跳过的封装层数：[Load] / [LoadCmd] 传 1，
// [MustLoad] / [MustLoadCmd] 传 2；每增加一层封装需相应加一
// （见 [WithCallerSkip]）。定位依据是调用方源文件的编译期路径，
// 因此主要用于开发与测试环境；找不到 go.mod 时返回错误，
// 调用方应回退到当前工作目录。
func FindProjectRoot(skip int) (string, error) {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		return "", errors.New("cfgm: cannot determine caller")
	}

	dir := filepath.Dir(file)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("cfgm: go.mod not found above %s", filepath.Dir(file))
		}
		dir = parent
	}
}
