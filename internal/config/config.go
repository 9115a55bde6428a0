// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 WithAppName / WithConfigPaths 选项设置
//  3. 环境变量 - 通过 WithEnvPrefix 选项启用
//  4. CLI flags - 通过 WithCommand 选项设置
package config

import (
	"time"

	"github.com/lwmacct/260829-go-pkg-subst/pkg/subst"
)

// Config 应用配置。
type Config struct {
	Server ServerConfig `json:"server" desc:"服务端配置"`
	Client ClientConfig `json:"client" desc:"客户端配置"`
	Render RenderConfig `json:"render" desc:"渲染配置"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数"`
}

// RenderConfig 渲染配置。
type RenderConfig struct {
	Output   string            `json:"output" desc:"输出文件路径，空则输出到 stdout"`
	Vars     map[string]string `json:"vars" desc:"额外变量，优先于环境变量"`
	NoEnv    bool              `json:"no-env" desc:"禁用环境变量查找"`
	MaxDepth int               `json:"max-depth" desc:"嵌套展开深度上限"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:     `${SUBST_ADDR:-:40118}`,
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,
		},
		Client: ClientConfig{
			URL:     `${SUBST_SERVER_URL:-http://localhost:40118}`,
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Render: RenderConfig{
			MaxDepth: subst.DefaultMaxDepth,
		},
	}
}
