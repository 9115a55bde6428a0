package subst

// Option 配置 Substitutor 的可选参数。
type Option func(*Substitutor)

// WithMaxDepth 设置嵌套展开的深度上限（默认 [DefaultMaxDepth]）。
//
// 超过上限时 Resolve 返回 [ErrDepthExceeded]。非正值被忽略。
func WithMaxDepth(n int) Option {
	return func(s *Substitutor) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// WithMaxPasses 设置整体扫描的轮次上限（默认 [DefaultMaxPasses]）。
//
// 每轮至少完成一次替换才会进入下一轮；达到上限仍未稳定时
// Resolve 返回 [ErrTooManyPasses]。非正值被忽略。
func WithMaxPasses(n int) Option {
	return func(s *Substitutor) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}
