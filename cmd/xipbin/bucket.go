package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xipbin/pkg/lifecycle/xrun"
	"github.com/omeyang/xipbin/pkg/observability/xlog"
	"github.com/omeyang/xipbin/pkg/util/xbucket"
)

type bucketReport struct {
	Precision int              `json:"precision" yaml:"precision"`
	Total     uint64           `json:"total" yaml:"total"`
	Skipped   uint64           `json:"skipped" yaml:"skipped"`
	Invalid   int64            `json:"invalid" yaml:"invalid"`
	Buckets   []xbucket.Bucket `json:"buckets" yaml:"buckets"`
}

func createBucketCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "bucket",
		Aliases:   []string{"b"},
		Usage:     "按 token 分桶统计地址，每行一个地址",
		ArgsUsage: "[file...]（缺省或 - 读取 stdin）",
		Flags: []cli.Flag{
			precisionFlag(),
			&cli.IntFlag{
				Name:  "dedup-size",
				Usage: "unique 计数的去重窗口容量（默认取配置 bucket.dedup_size）",
			},
			&cli.DurationFlag{
				Name:  "dedup-ttl",
				Usage: "地址在去重窗口内的有效期，0 不过期（默认取配置 bucket.dedup_ttl）",
			},
			&cli.FloatFlag{
				Name:  "sample-rate",
				Usage: "按地址一致采样的比率 0~1，0 表示不采样（默认取配置 bucket.sample_rate）",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "同时读取的文件数（默认取配置 bucket.workers）",
			},
		},
		Action: e.cmdBucket,
	}
}

func (e *env) bucketConfig(cmd *cli.Command) xbucket.Config {
	cfg := xbucket.Config{
		Precision:  e.precision(cmd),
		DedupSize:  e.settings.Bucket.DedupSize,
		DedupTTL:   e.settings.Bucket.DedupTTL,
		SampleRate: e.settings.Bucket.SampleRate,
	}
	if cmd.IsSet("dedup-size") {
		cfg.DedupSize = cmd.Int("dedup-size")
	}
	if cmd.IsSet("dedup-ttl") {
		cfg.DedupTTL = cmd.Duration("dedup-ttl")
	}
	if cmd.IsSet("sample-rate") {
		cfg.SampleRate = cmd.Float("sample-rate")
	}
	return cfg
}

func (e *env) cmdBucket(ctx context.Context, cmd *cli.Command) error {
	workers := e.settings.Bucket.Workers
	if cmd.IsSet("workers") {
		workers = cmd.Int("workers")
	}
	if workers < 1 {
		return usagef("--workers 必须 >= 1: %d", workers)
	}
	cfg := e.bucketConfig(cmd)
	counter, err := xbucket.New(cfg)
	if err != nil {
		return &usageError{err: err}
	}
	defer counter.Close()

	logger := e.logger.With(xlog.Component("bucket"))
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	if n := countStdin(inputs); n > 1 {
		return usagef("stdin（-）只能指定一次，实际 %d 次", n)
	}

	var invalid atomic.Int64
	g, _ := xrun.NewGroup(ctx, xrun.WithName("bucket"), xrun.WithLogger(logger), xrun.WithLimit(workers))
	for _, input := range inputs {
		g.GoWithName(input, func(ctx context.Context) error {
			n, err := e.countInput(ctx, logger.With(slog.String("input", input)), counter, input)
			invalid.Add(n)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// 中断后的结果不完整，不输出
	if err := context.Cause(ctx); err != nil {
		return err
	}

	report := bucketReport{
		Precision: cfg.Precision,
		Total:     counter.Total(),
		Skipped:   counter.Skipped(),
		Invalid:   invalid.Load(),
		Buckets:   counter.Buckets(),
	}
	logger.Info(ctx, "bucket done",
		xlog.Count(int64(report.Total)), //nolint:gosec // 计数不会超过 int64
		slog.Int64("invalid", report.Invalid),
		slog.Uint64("skipped", report.Skipped),
		slog.Int("buckets", len(report.Buckets)),
		slog.Int("inputs", len(inputs)))

	return e.render(report, func(w io.Writer) error {
		for _, b := range report.Buckets {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", b.Token, b.Hits, b.Unique, b.Range); err != nil {
				return err
			}
		}
		return nil
	})
}

func countStdin(inputs []string) int {
	n := 0
	for _, in := range inputs {
		if in == "-" {
			n++
		}
	}
	return n
}

// countInput 统计一个输入，"-" 表示 stdin。
func (e *env) countInput(ctx context.Context, logger xlog.Logger, counter *xbucket.Counter, input string) (int64, error) {
	if input == "-" {
		return countLines(ctx, logger, counter, e.stdin)
	}
	f, err := os.Open(input) //#nosec G304 -- 路径由用户显式指定
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := countLines(ctx, logger, counter, f)
	if err != nil {
		return n, fmt.Errorf("read %s: %w", input, err)
	}
	return n, nil
}

// countLines 逐行计数，跳过空行和 # 注释；无效地址记 WARN 后继续。
func countLines(ctx context.Context, logger xlog.Logger, counter *xbucket.Counter, in io.Reader) (invalid int64, err error) {
	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return invalid, err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if _, err := counter.AddString(text); err != nil {
			invalid++
			logger.Warn(ctx, "skip invalid line", xlog.Line(line), xlog.Addr(text), xlog.Err(err))
		}
	}
	return invalid, sc.Err()
}
