package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-subst/internal/config"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/cfgm"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/version"
)

// 默认 action 等同于 health 子命令
func action(ctx context.Context, cmd *cli.Command) error {
	return healthAction(ctx, cmd)
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	body, err := doRequest(ctx, cfg.Client, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	fmt.Println(string(body))

	return nil
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var template []byte
	if path := cmd.Args().First(); path != "" {
		template, err = os.ReadFile(path) //nolint:gosec // path is a user-supplied CLI argument
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	} else {
		template, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	body, err := doRequest(ctx, cfg.Client, http.MethodPost, "/render", template)
	if err != nil {
		return err
	}
	_, _ = os.Stdout.Write(body)

	return nil
}

// doRequest 发送请求，5xx 与网络错误按配置重试，4xx 直接返回。
func doRequest(ctx context.Context, cc config.ClientConfig, method, path string, body []byte) ([]byte, error) {
	client := &http.Client{Timeout: cc.Timeout}

	var lastErr error
	for attempt := 0; attempt <= cc.Retries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying request", "path", path, "attempt", attempt)
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}

		req, err := http.NewRequestWithContext(ctx, method, cc.URL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err

			continue
		}

		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err

			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("server returned %s", resp.Status)

			continue
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(data))
		}

		return data, nil
	}

	return nil, fmt.Errorf("request %s failed after %d attempts: %w", path, cc.Retries+1, lastErr)
}
