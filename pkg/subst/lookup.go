package subst

import (
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 常用查找函数
// ═══════════════════════════════════════════════════════════════════════════

// Env 返回基于当前环境变量快照的查找函数。
//
// 快照在调用 Env 时生成，之后环境变量的变化不会影响已创建的查找函数。
func Env() Lookup {
	vars := make(map[string]string)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			vars[parts[0]] = parts[1]
		}
	}

	return Map(vars)
}

// Map 返回基于固定映射的查找函数。
//
// values 为 nil 时所有变量都视为不存在。
func Map(values map[string]string) Lookup {
	return func(name string) (string, bool) {
		value, ok := values[name]

		return value, ok
	}
}

// Chain 按顺序组合多个查找函数，先命中者生效。
//
// 典型用法是让显式变量覆盖环境变量：
//
//	subst.Chain(subst.Map(vars), subst.Env())
func Chain(lookups ...Lookup) Lookup {
	return func(name string) (string, bool) {
		for _, lookup := range lookups {
			if lookup == nil {
				continue
			}
			if value, ok := lookup(name); ok {
				return value, true
			}
		}

		return "", false
	}
}
