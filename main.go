package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-subst/internal/command/client"
	"github.com/lwmacct/260829-go-pkg-subst/internal/command/render"
	"github.com/lwmacct/260829-go-pkg-subst/internal/command/server"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "变量替换工具",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			render.Command,
			client.Command,
			server.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
