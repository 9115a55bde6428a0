package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-subst/internal/config"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/cfgm"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/subst"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/version"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	input, err := readInput(cmd.Args().Slice())
	if err != nil {
		return err
	}

	resolved, err := Render(cfg.Render, input)
	if err != nil {
		return err
	}

	return writeOutput(cfg.Render.Output, resolved)
}

// Render 按渲染配置展开 input 中的变量引用。
//
// 显式变量优先于环境变量；NoEnv 为 true 时仅使用显式变量。
func Render(cfg config.RenderConfig, input string) (string, error) {
	lookups := []subst.Lookup{subst.Map(cfg.Vars)}
	if !cfg.NoEnv {
		lookups = append(lookups, subst.Env())
	}

	resolved, err := subst.New(
		subst.Chain(lookups...),
		subst.WithMaxDepth(cfg.MaxDepth),
	).Resolve(input)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	return resolved, nil
}

// readInput 按顺序拼接输入文件内容；无参数时读取 stdin。
func readInput(paths []string) (string, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(data), nil
	}

	var b strings.Builder
	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // path is a user-supplied CLI argument
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		b.Write(data)
	}

	return b.String(), nil
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(content)

		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // rendered output is not secret
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
