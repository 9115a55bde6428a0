package subst

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// 占位符标记。与主流 Shell 保持一致，转义写法为 "$${"。
const (
	escapeChar     = '$'
	prefixMarker   = "${"
	suffixMarker   = "}"
	valueDelimiter = ":-"
)

// 防御性上限，避免病态输入导致无界递归或无限轮次。
const (
	DefaultMaxDepth  = 64
	DefaultMaxPasses = 100
)

// Lookup 将变量名映射为可选的值。
//
// ok 为 false 表示变量不存在；空字符串是合法的值，与"不存在"不同。
type Lookup func(name string) (value string, ok bool)

// CycleError 表示替换过程中出现循环引用。
//
// Chain 按首次遇到的顺序记录变量名，末尾为重复出现的变量，
// 例如 A -> B -> A 时 Chain 为 ["A", "B", "A"]。
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "subst: cyclic substitution: " + strings.Join(e.Chain, "->")
}

// ErrDepthExceeded 表示嵌套展开超过深度上限。
var ErrDepthExceeded = errors.New("subst: max substitution depth exceeded")

// ErrTooManyPasses 表示整体展开在轮次上限内未能稳定。
var ErrTooManyPasses = errors.New("subst: substitution did not stabilize")

// ═══════════════════════════════════════════════════════════════════════════
// Substitutor
// ═══════════════════════════════════════════════════════════════════════════

// Substitutor 持有查找函数并执行递归变量替换。
//
// 实例不含可变状态，可在多个 goroutine 间共享，
// 前提是 Lookup 自身支持并发调用。
type Substitutor struct {
	lookup    Lookup
	maxDepth  int
	maxPasses int
}

// New 创建 Substitutor。
//
// lookup 为 nil 时所有变量都视为不存在（占位符原样保留）。
func New(lookup Lookup, opts ...Option) *Substitutor {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	s := &Substitutor{
		lookup:    lookup,
		maxDepth:  DefaultMaxDepth,
		maxPasses: DefaultMaxPasses,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Resolve 展开 template 中的全部占位符。
//
// 语法：
//   - ${VAR} - 变量替换；变量不存在时原样保留
//   - ${VAR:-default} - 变量不存在时使用默认值（空值不回退）
//   - $${ - 字面量 "${"，不触发替换
//
// 替换出的文本会立即递归展开；默认值中嵌套的占位符由后续轮次展开，
// 直到一轮扫描不再产生替换为止。
//
// 仅两类错误：循环引用返回 [*CycleError]；
// 超出防御上限返回 [ErrDepthExceeded] 或 [ErrTooManyPasses]。
// 出错时不产生部分结果。
func (s *Substitutor) Resolve(template string) (string, error) {
	if template == "" {
		return template, nil
	}

	out := template
	for pass := 0; ; pass++ {
		if pass >= s.maxPasses {
			return "", fmt.Errorf("%w after %d passes", ErrTooManyPasses, s.maxPasses)
		}

		next, substituted, err := s.substitute(out, 0, nil)
		if err != nil {
			return "", err
		}
		if !substituted {
			break
		}
		out = next
	}

	return unescape(out), nil
}

// substitute 对 src 执行一轮从左到右的扫描替换。
//
// 替换出的值在同一调用栈内递归展开，stack 记录正在解析的变量名，
// 重复出现即为循环。转义序列 "$${" 在扫描期间保持原样，
// 由顶层在整体稳定后统一折叠，确保被转义的占位符不会在后续轮次被展开。
func (s *Substitutor) substitute(src string, depth int, stack []string) (string, bool, error) {
	if depth > s.maxDepth {
		return "", false, fmt.Errorf("%w (%d)", ErrDepthExceeded, s.maxDepth)
	}
	if !strings.Contains(src, prefixMarker) {
		return src, false, nil
	}

	var buf strings.Builder
	buf.Grow(len(src))
	substituted := false

	pos := 0
	for pos < len(src) {
		start := strings.Index(src[pos:], prefixMarker)
		if start < 0 {
			buf.WriteString(src[pos:])
			break
		}
		start += pos

		// 被转义的前缀标记：跳过，不打开占位符
		if start > 0 && src[start-1] == escapeChar {
			buf.WriteString(src[pos : start+len(prefixMarker)])
			pos = start + len(prefixMarker)
			continue
		}

		end := strings.Index(src[start+len(prefixMarker):], suffixMarker)
		if end < 0 {
			// 缺少后缀标记：整段按字面量处理
			buf.WriteString(src[pos:])
			break
		}
		end += start + len(prefixMarker)

		name, defaultValue, hasDefault := splitExpression(src[start+len(prefixMarker) : end])

		if slices.Contains(stack, name) {
			return "", false, &CycleError{Chain: append(slices.Clone(stack), name)}
		}

		value, ok := s.lookup(name)
		if !ok && hasDefault {
			value, ok = defaultValue, true
		}
		if !ok {
			// 查不到且无默认值：占位符原样保留
			buf.WriteString(src[pos : end+len(suffixMarker)])
			pos = end + len(suffixMarker)
			continue
		}

		buf.WriteString(src[pos:start])

		resolved, _, err := s.substitute(value, depth+1, append(stack, name))
		if err != nil {
			return "", false, err
		}
		buf.WriteString(resolved)

		substituted = true
		pos = end + len(suffixMarker)
	}

	return buf.String(), substituted, nil
}

// splitExpression 在首个 ":-" 处拆分变量表达式。
//
// 若在分隔符之前出现嵌套的 "${"，则放弃拆分，
// 整个表达式作为变量名交由递归展开处理。
func splitExpression(expr string) (name, defaultValue string, hasDefault bool) {
	for i := 0; i < len(expr); i++ {
		if strings.HasPrefix(expr[i:], prefixMarker) {
			break
		}
		if strings.HasPrefix(expr[i:], valueDelimiter) {
			return expr[:i], expr[i+len(valueDelimiter):], true
		}
	}

	return expr, "", false
}

// unescape 将存留的转义序列折叠为字面量前缀标记。
func unescape(s string) string {
	return strings.ReplaceAll(s, string(escapeChar)+prefixMarker, prefixMarker)
}

// Expand 基于当前环境变量快照展开 template。
//
// 等价于 New(Env()).Resolve(template)，适合配置文件加载等一次性场景。
func Expand(template string) (string, error) {
	return New(Env()).Resolve(template)
}
