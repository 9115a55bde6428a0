// Package subst 提供配置字符串的递归变量替换。
//
// 该包仅处理 ${...} 语法，适合在 SQL、YAML/JSON 等配置文本中做轻量替换。
// 不执行命令、不引入模板引擎，强调可读性与可预测性。
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. 替换结果会递归展开，直到整体稳定
//  3. 循环引用会返回 [*CycleError]，并携带完整引用链
//  4. 查不到且无默认值的占位符保持原样，缺少 "}" 的占位符同样保持原样
//  5. "$${" 转义为字面量 "${"，不触发替换
//
// # 快速开始
//
// 基于环境变量展开：
//
//	content := `dsn: "${DB_URL:-postgres://localhost:5432/app}"`
//	expanded, err := subst.Expand(content)
//
// 自定义查找函数：
//
//	s := subst.New(subst.Map(map[string]string{"region": "cn-north"}))
//	expanded, err := s.Resolve(`endpoint=${region}.example.com`)
//
// 详见 [Substitutor.Resolve] 文档。
package subst
