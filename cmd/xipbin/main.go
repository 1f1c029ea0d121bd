// xipbin 是 IPv4 区间编码的命令行工具。
//
// 用法:
//
//	xipbin [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件（.yaml/.yml/.json）
//	-o, --output      输出格式 text|json|yaml（默认: text）
//	    --log-level   日志级别 debug|info|warn|error（默认: warn）
//	    --log-format  日志格式 text|json（默认: text）
//	    --log-file    日志文件，按大小轮转（默认输出到 stderr）
//
// 命令:
//
//	encode <addr|int>...   编码地址或整数，--range 时编码地址段
//	decode <token>...      解码 token，--exact 同时输出误差
//	span <token>...        输出 token 的区间、地址范围和 CIDR 覆盖
//	bucket [file]          按 token 分桶统计地址（每行一个，缺省读 stdin）
//	demo                   演示 66.96.160.133 的逐级编码和随机地址排序
//
// 退出码:
//
//	0: 成功
//	1: 执行失败（部分输入无效时已输出其余结果）
//	2: 参数错误（缺少参数、未知 flag、配置值非法等）
//
// 示例:
//
//	xipbin encode -p 5 66.96.160.133        # a0ce0
//	xipbin encode --range 66.96.0.0/15      # a0ce0
//	xipbin decode --exact a0ce0
//	xipbin -o json span a0ce0ac0c1
//	xipbin bucket -p 4 access.log
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息，可通过 -ldflags "-X main.Version=..." 注入。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run 执行命令并把错误映射为退出码。
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}
	defer e.close()

	err := createApp(e).Run(ctx, args)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	// 框架产生的错误（如未知命令）
	if _, ok := err.(cli.ExitCoder); ok {
		fmt.Fprintln(stderr, err)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}
