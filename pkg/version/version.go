// Package version 提供应用版本信息与 version 子命令。
package version

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// 构建时通过 -ldflags 注入：
//
//	-X github.com/lwmacct/260829-go-pkg-subst/pkg/version.Version=v1.2.3
//	-X github.com/lwmacct/260829-go-pkg-subst/pkg/version.Commit=abc1234
var (
	AppRawName = "subst"
	Version    = "dev"
	Commit     = ""
)

// GetVersion 返回应用版本。
//
// 未经 ldflags 注入时回退到模块构建信息。
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}

	return Version
}

// Command 版本信息命令。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		fmt.Printf("%s %s", AppRawName, GetVersion())
		if Commit != "" {
			fmt.Printf(" (%s)", Commit)
		}
		fmt.Printf(" %s/%s\n", runtime.GOOS, runtime.GOARCH)

		return nil
	},
}
