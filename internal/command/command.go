// Package command 提供渲染、服务端与客户端的命令行功能。
package command

import "github.com/lwmacct/260829-go-pkg-subst/internal/config"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()
