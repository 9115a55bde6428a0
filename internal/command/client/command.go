// Package client 提供 HTTP 渲染服务的客户端命令。
package client

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-subst/internal/command"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/version"
)

// Command 客户端命令
var Command = &cli.Command{
	Name:  "client",
	Usage: "HTTP 客户端工具",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "client-url",
			Aliases: []string{"s"},
			Value:   command.Defaults.Client.URL,
			Usage:   "服务器地址",
		},
		&cli.DurationFlag{
			Name:  "client-timeout",
			Value: command.Defaults.Client.Timeout,
			Usage: "请求超时时间",
		},
		&cli.IntFlag{
			Name:  "client-retries",
			Value: command.Defaults.Client.Retries,
			Usage: "重试次数",
		},
	},
	Action: action,
	Commands: []*cli.Command{
		version.Command,
		{
			Name:   "health",
			Usage:  "检查服务器健康状态",
			Action: healthAction,
		},
		{
			Name:      "render",
			Usage:     "提交模板到服务器渲染",
			ArgsUsage: "[file]",
			Action:    renderAction,
		},
	},
}
