package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xipbin/pkg/config/xconf"
	"github.com/omeyang/xipbin/pkg/observability/xlog"
	"github.com/omeyang/xipbin/pkg/observability/xrotate"
)

// exitError 表示输出已完成、只需设置退出码的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 表示参数或配置值错误，退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// env 是一次运行共享的输入输出、配置和日志。
type env struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	settings xconf.Settings
	logger   xlog.LoggerWithLevel
	cleanup  func() error
}

func (e *env) close() {
	if e.cleanup != nil {
		_ = e.cleanup() //nolint:errcheck // 退出前尽力关闭日志文件
	}
}

func createApp(e *env) *cli.Command {
	return &cli.Command{
		Name:      "xipbin",
		Usage:     "IPv4 地址区间的可变精度编码",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Reader:    e.stdin,
		Writer:    e.stdout,
		ErrWriter: e.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "输出格式 text|json|yaml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 " + strings.Join(xlog.LevelNames, "|"),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 text|json",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志文件（按大小轮转）",
			},
		},
		Before:         e.before,
		Commands:       createCommands(e),
		OnUsageError:   onUsageError,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// onUsageError 把 flag 解析错误统一为 usageError。
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}

// before 加载配置文件，叠加显式设置的全局 flag，并构建 logger。
func (e *env) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var cfg xconf.Config
	if path := cmd.String("config"); path != "" {
		c, err := xconf.New(path)
		if err != nil {
			return ctx, &usageError{err: err}
		}
		cfg = c
	}
	s, err := xconf.LoadSettings(cfg)
	if err != nil {
		return ctx, &usageError{err: err}
	}

	if cmd.IsSet("output") {
		s.Output = cmd.String("output")
	}
	if cmd.IsSet("log-level") {
		s.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		s.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		s.Log.File = cmd.String("log-file")
	}
	s.Output = strings.ToLower(strings.TrimSpace(s.Output))
	if err := s.Validate(); err != nil {
		return ctx, &usageError{err: err}
	}

	b := xlog.New().
		SetOutput(e.stderr).
		SetLevelString(s.Log.Level).
		SetFormat(s.Log.Format)
	if s.Log.File != "" {
		b.SetRotation(s.Log.File, xrotate.WithConfig(s.Log.Rotate))
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return ctx, &usageError{err: err}
	}

	e.settings = s
	e.logger = logger
	e.cleanup = cleanup
	logger.Debug(ctx, "settings loaded",
		xlog.Precision(s.Precision),
		slog.String("output", s.Output),
		slog.String("config", cmd.String("config")))
	return ctx, nil
}
