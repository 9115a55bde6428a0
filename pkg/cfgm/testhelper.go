package cfgm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ConfigTestHelper 校验配置结构体与配置文件的一致性，供项目测试使用。
//
// 典型用法：
//
//	var helper = cfgm.ConfigTestHelper[Config]{
//	    ExamplePath: "config/config.example.yaml",
//	    ConfigPath:  "config/config.yaml",
//	}
//
//	func TestWriteExample(t *testing.T) { helper.WriteExampleFile(t, DefaultConfig()) }
//	func TestConfigKeysValid(t *testing.T) { helper.ValidateKeys(t) }
type ConfigTestHelper[T any] struct {
	ExamplePath string // 示例文件路径，由 WriteExampleFile 生成
	ConfigPath  string // 实际配置文件路径，可以不存在
}

// WriteExampleFile 将 defaultConfig 的 [ExampleYAML] 写入 ExamplePath。
func (h ConfigTestHelper[T]) WriteExampleFile(t *testing.T, defaultConfig T) {
	t.Helper()

	if h.ExamplePath == "" {
		t.Fatal("ConfigTestHelper: ExamplePath is empty")
	}
	if err := os.MkdirAll(filepath.Dir(h.ExamplePath), 0o755); err != nil {
		t.Fatalf("create example dir: %v", err)
	}
	if err := os.WriteFile(h.ExamplePath, ExampleYAML(defaultConfig), 0o644); err != nil {
		t.Fatalf("write example file: %v", err)
	}
}

// ValidateKeys 校验示例文件与配置文件中的 key 均存在于配置结构体。
//
// 文件不存在时跳过；发现未知 key 时报告失败，防止配置漂移。
func (h ConfigTestHelper[T]) ValidateKeys(t *testing.T) {
	t.Helper()

	var zero T
	valid := make(map[string]bool)
	for _, key := range collectConfigKeys(zero) {
		valid[key] = true
	}

	for _, path := range []string{h.ExamplePath, h.ConfigPath} {
		if path == "" {
			continue
		}
		content, err := os.ReadFile(path) //nolint:gosec // path is from test code
		if err != nil {
			continue
		}

		configMap, err := parseConfigBytes(path, content)
		if err != nil {
			t.Errorf("parse %s: %v", path, err)

			continue
		}
		for _, key := range flattenMapKeys(configMap) {
			if !isKnownKey(valid, key) {
				t.Errorf("%s: unknown config key %q", path, key)
			}
		}
	}
}

// isKnownKey 判断 key 或其任一父级是否为已知配置项。
// map 类型字段的子 key（如 render.vars.region）挂在父级之下。
func isKnownKey(valid map[string]bool, key string) bool {
	for {
		if valid[key] {
			return true
		}

		i := strings.LastIndex(key, ".")
		if i < 0 {
			return false
		}
		key = key[:i]
	}
}
