package xnet

import (
	"fmt"

	"go4.org/netipx"
)

// WireRange 是 IPv4 范围的序列化格式。
// 使用 JSON/YAML 标签 {"start":"...","end":"..."}。
type WireRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// WireRangeFrom 从 [netipx.IPRange] 创建 WireRange，带有效性校验。
func WireRangeFrom(r netipx.IPRange) (WireRange, error) {
	if !r.IsValid() {
		return WireRange{}, fmt.Errorf("%w: invalid IPRange", ErrInvalidRange)
	}
	return WireRange{
		Start: r.From().String(),
		End:   r.To().String(),
	}, nil
}

// IsZero 报告 w 是否为零值。
func (w WireRange) IsZero() bool {
	return w.Start == "" && w.End == ""
}

// String 返回 "start-end"；起止相同时只返回单个 IP。
// 部分设置时返回有值的一侧，避免产生悬空的连字符。
func (w WireRange) String() string {
	switch {
	case w.Start == w.End:
		return w.Start
	case w.Start == "":
		return w.End
	case w.End == "":
		return w.Start
	}
	return w.Start + "-" + w.End
}
