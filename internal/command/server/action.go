package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260829-go-pkg-subst/internal/command/render"
	"github.com/lwmacct/260829-go-pkg-subst/internal/config"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/cfgm"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/subst"
	"github.com/lwmacct/260829-go-pkg-subst/pkg/version"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg := cfgm.MustLoadCmd(cmd, config.DefaultConfig(), version.AppRawName)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newMux(cfg),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  cfg.Server.Idletime,
	}

	// 启动服务器（非阻塞）
	go func() {
		slog.Info("Server starting", "addr", cfg.Server.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down")

	// 优雅关闭，最多等待读写超时时长
	// 使用 WithoutCancel 保持 context 链，同时防止父 context 取消影响 shutdown
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.Timeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("Server shutdown failed", "error", err)

		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("Server stopped gracefully")

	return nil
}

// newMux 构建路由：健康检查与模板渲染。
func newMux(cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// 健康检查端点
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, `{"status":"ok"}`)
	})

	// 模板渲染端点：请求体为模板，响应体为展开结果
	mux.HandleFunc("POST /render", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)

			return
		}

		resolved, err := render.Render(cfg.Render, string(body))
		if err != nil {
			slog.Warn("Render failed", "error", err)
			status := http.StatusInternalServerError

			var cycleErr *subst.CycleError
			if errors.As(err, &cycleErr) ||
				errors.Is(err, subst.ErrDepthExceeded) ||
				errors.Is(err, subst.ErrTooManyPasses) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)

			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(resolved))
	})

	return mux
}
