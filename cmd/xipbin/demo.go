package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xipbin/pkg/util/xipbin"
	"github.com/omeyang/xipbin/pkg/util/xnet"
)

// 演示用地址
const (
	demoAddress = "66.96.160.133"
	demoSample  = "10.86.41.92"
)

type demoStep struct {
	Precision int     `json:"precision" yaml:"precision"`
	Token     string  `json:"token" yaml:"token"`
	Value     float64 `json:"value" yaml:"value"`
	Margin    float64 `json:"margin" yaml:"margin"`
}

type demoEntry struct {
	Addr  string `json:"addr" yaml:"addr"`
	Value uint32 `json:"value" yaml:"value"`
	Token string `json:"token" yaml:"token"`
}

type demoReport struct {
	Address demoEntry   `json:"address" yaml:"address"`
	Steps   []demoStep  `json:"steps" yaml:"steps"`
	Random  []demoEntry `json:"random" yaml:"random"`
	Sample  demoEntry   `json:"sample" yaml:"sample"`
}

func createDemoCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "演示逐级编码、随机地址按 token 排序",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "random",
				Usage: "随机地址数量",
				Value: 100,
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "随机种子，未设置时每次不同",
			},
		},
		Action: e.cmdDemo,
	}
}

func (e *env) cmdDemo(ctx context.Context, cmd *cli.Command) error {
	n := cmd.Int("random")
	if n < 0 {
		return usagef("--random 不能为负数: %d", n)
	}
	var rng *rand.Rand
	if cmd.IsSet("seed") {
		seed := cmd.Uint64("seed")
		rng = rand.New(rand.NewPCG(seed, seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	report, err := buildDemo(n, rng)
	if err != nil {
		return err
	}
	e.logger.Debug(ctx, "demo built", slog.Int("random", n))
	return e.render(report, func(w io.Writer) error { return writeDemo(w, report) })
}

func demoEntryOf(v uint32) demoEntry {
	return demoEntry{
		Addr:  xnet.FormatUint32(v),
		Value: v,
		Token: xipbin.Encode(float64(v), xipbin.MaxPrecision),
	}
}

// buildDemo 逐级编码演示地址，并把 n 个随机地址按 token 排序。
func buildDemo(n int, rng *rand.Rand) (demoReport, error) {
	v, err := xipbin.AddressToInteger(demoAddress)
	if err != nil {
		return demoReport{}, err
	}
	report := demoReport{Address: demoEntryOf(v)}
	for p := 1; p <= xipbin.MaxPrecision; p++ {
		token := xipbin.Encode(float64(v), p)
		value, margin, err := xipbin.DecodeExactly(token)
		if err != nil {
			return demoReport{}, err
		}
		report.Steps = append(report.Steps, demoStep{Precision: p, Token: token, Value: value, Margin: margin})
	}

	report.Random = make([]demoEntry, 0, n)
	for range n {
		report.Random = append(report.Random, demoEntryOf(rng.Uint32()))
	}
	slices.SortFunc(report.Random, func(a, b demoEntry) int { return strings.Compare(a.Token, b.Token) })

	s, err := xipbin.AddressToInteger(demoSample)
	if err != nil {
		return demoReport{}, err
	}
	report.Sample = demoEntryOf(s)
	return report, nil
}

func writeDemo(w io.Writer, r demoReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %d\n", r.Address.Addr, r.Address.Value)
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "%2d  %-10s  %s ± %s\n", s.Precision, s.Token, formatFloat(s.Value), formatFloat(s.Margin))
	}
	fmt.Fprintf(&b, "\nrandom addresses sorted by token (%d)\n", len(r.Random))
	for _, e := range r.Random {
		fmt.Fprintf(&b, "%-10s  %s\n", e.Token, e.Addr)
	}
	fmt.Fprintf(&b, "\n%s = %d -> %s\n", r.Sample.Addr, r.Sample.Value, r.Sample.Token)
	_, err := io.WriteString(w, b.String())
	return err
}
