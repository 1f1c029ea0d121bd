package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xipbin/pkg/observability/xlog"
	"github.com/omeyang/xipbin/pkg/util/xipbin"
	"github.com/omeyang/xipbin/pkg/util/xnet"
)

func createCommands(e *env) []*cli.Command {
	cmds := []*cli.Command{
		createEncodeCommand(e),
		createDecodeCommand(e),
		createSpanCommand(e),
		createBucketCommand(e),
		createDemoCommand(e),
	}
	for _, c := range cmds {
		c.OnUsageError = onUsageError
	}
	return cmds
}

func precisionFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "precision",
		Aliases: []string{"p"},
		Usage:   fmt.Sprintf("token 长度 0~%d（默认取配置 precision）", xipbin.MaxPrecision),
	}
}

// precision 返回显式设置的 --precision，否则取配置值。
func (e *env) precision(cmd *cli.Command) int {
	if cmd.IsSet("precision") {
		return cmd.Int("precision")
	}
	return e.settings.Precision
}

type encodeResult struct {
	Input string `json:"input" yaml:"input"`
	Token string `json:"token" yaml:"token"`
}

func createEncodeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Aliases:   []string{"e"},
		Usage:     "编码 IPv4 地址、32 位整数或地址段",
		ArgsUsage: "<addr|int|range>...",
		Flags: []cli.Flag{
			precisionFlag(),
			&cli.BoolFlag{
				Name:    "range",
				Aliases: []string{"r"},
				Usage:   "参数是地址段（CIDR、addr/mask 或 a-b），输出能容纳整段的最长 token",
			},
		},
		Action: e.cmdEncode,
	}
}

func (e *env) cmdEncode(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return usagef("encode 需要至少一个地址")
	}
	precision := e.precision(cmd)
	asRange := cmd.Bool("range")
	logger := e.logger.With(xlog.Operation("encode"))

	var results []encodeResult
	failed := 0
	for _, arg := range cmd.Args().Slice() {
		token, err := encodeInput(arg, precision, asRange)
		if err != nil {
			failed++
			logger.Error(ctx, "encode failed", xlog.Addr(arg), xlog.Err(err))
			continue
		}
		logger.Debug(ctx, "encoded", xlog.Addr(arg), xlog.Token(token), xlog.Precision(precision))
		results = append(results, encodeResult{Input: arg, Token: token})
	}

	err := e.render(results, func(w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Input, r.Token); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// encodeInput 依次尝试十进制整数和点分地址；asRange 时按地址段解析。
func encodeInput(s string, precision int, asRange bool) (string, error) {
	if asRange {
		r, err := xnet.ParseRange(s)
		if err != nil {
			return "", err
		}
		return xipbin.EncodeRange(r, precision)
	}
	if v, err := strconv.ParseUint(s, 10, 32); err == nil {
		return xipbin.Encode(float64(v), precision), nil
	}
	return xipbin.EncodeAddress(s, precision)
}

type decodeResult struct {
	Token  string   `json:"token" yaml:"token"`
	Value  float64  `json:"value" yaml:"value"`
	Margin *float64 `json:"margin,omitempty" yaml:"margin,omitempty"`
}

func createDecodeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Aliases:   []string{"d"},
		Usage:     "解码 token 为地址数值",
		ArgsUsage: "<token>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "exact",
				Aliases: []string{"x"},
				Usage:   "同时输出误差（±margin）",
			},
		},
		Action: e.cmdDecode,
	}
}

func (e *env) cmdDecode(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return usagef("decode 需要至少一个 token")
	}
	exact := cmd.Bool("exact")
	logger := e.logger.With(xlog.Operation("decode"))

	var results []decodeResult
	failed := 0
	for _, token := range cmd.Args().Slice() {
		value, margin, err := xipbin.DecodeExactly(token)
		if err != nil {
			failed++
			logger.Error(ctx, "decode failed", xlog.Token(token), xlog.Err(err))
			continue
		}
		r := decodeResult{Token: token, Value: value}
		if exact {
			r.Margin = &margin
		}
		results = append(results, r)
	}

	err := e.render(results, func(w io.Writer) error {
		for _, r := range results {
			line := r.Token + "\t" + formatFloat(r.Value)
			if r.Margin != nil {
				line += "\t" + formatFloat(*r.Margin)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func createSpanCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "span",
		Aliases:   []string{"s"},
		Usage:     "输出 token 的区间、整数地址范围和 CIDR 覆盖",
		ArgsUsage: "<token>...",
		Action:    e.cmdSpan,
	}
}

func (e *env) cmdSpan(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return usagef("span 需要至少一个 token")
	}
	logger := e.logger.With(xlog.Operation("span"))

	var spans []xipbin.Span
	failed := 0
	for _, token := range cmd.Args().Slice() {
		s, err := xipbin.Describe(token)
		if err != nil {
			failed++
			logger.Error(ctx, "describe failed", xlog.Token(token), xlog.Err(err))
			continue
		}
		spans = append(spans, s)
	}

	err := e.render(spans, func(w io.Writer) error {
		for i, s := range spans {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeSpan(w, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func writeSpan(w io.Writer, s xipbin.Span) error {
	rng := "(empty)"
	if !s.Range.IsZero() {
		rng = fmt.Sprintf("%s (%d)", s.Range, s.Size)
	}
	_, err := fmt.Fprintf(w, "token:     %s\nprecision: %d\nvalue:     %s ± %s\ninterval:  [%s, %s]\nrange:     %s\n",
		s.Token, s.Precision,
		formatFloat(s.Value), formatFloat(s.Margin),
		formatFloat(s.Interval.Low), formatFloat(s.Interval.High),
		rng)
	if err != nil {
		return err
	}
	for _, p := range s.Prefixes {
		if _, err := fmt.Fprintf(w, "prefix:    %s\n", p); err != nil {
			return err
		}
	}
	return nil
}
