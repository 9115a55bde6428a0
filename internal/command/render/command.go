// Package render 提供模板渲染命令。
package render

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-subst/internal/command"
)

// Command 渲染命令
var Command = &cli.Command{
	Name:      "render",
	Usage:     "展开模板中的变量引用",
	ArgsUsage: "[file...]",
	Action:    action,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "render-output",
			Aliases: []string{"o"},
			Value:   command.Defaults.Render.Output,
			Usage:   "输出文件路径，空则输出到 stdout",
		},
		&cli.StringMapFlag{
			Name:  "render-vars",
			Value: command.Defaults.Render.Vars,
			Usage: "额外变量 (key=value)，优先于环境变量",
		},
		&cli.BoolFlag{
			Name:  "render-no-env",
			Value: command.Defaults.Render.NoEnv,
			Usage: "禁用环境变量查找",
		},
		&cli.IntFlag{
			Name:  "render-max-depth",
			Value: command.Defaults.Render.MaxDepth,
			Usage: "嵌套展开深度上限",
		},
	},
}
