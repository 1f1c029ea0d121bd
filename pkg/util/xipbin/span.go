package xipbin

import (
	"errors"
	"net/netip"

	"github.com/omeyang/xipbin/pkg/util/xnet"
)

// Span 汇总一个 token 描述的全部信息，用于 JSON/YAML 输出。
type Span struct {
	Token     string         `json:"token" yaml:"token"`
	Precision int            `json:"precision" yaml:"precision"`
	Value     float64        `json:"value" yaml:"value"`
	Margin    float64        `json:"margin" yaml:"margin"`
	Interval  Interval       `json:"interval" yaml:"interval"`
	Range     xnet.WireRange `json:"range,omitzero" yaml:"range,omitempty"`
	Size      uint64         `json:"size" yaml:"size"`
	Prefixes  []netip.Prefix `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`
}

// Describe 解码 token 并计算其整数地址范围与 CIDR 覆盖。
// 区间内不含整数地址时 Range 为零值、Size 为 0，不视为错误。
func Describe(token string) (Span, error) {
	iv, err := TokenInterval(token)
	if err != nil {
		return Span{}, err
	}
	s := Span{
		Token:     token,
		Precision: len(token),
		Value:     iv.Mid(),
		Margin:    Margin(len(token)),
		Interval:  iv,
	}

	r, err := TokenRange(token)
	if errors.Is(err, ErrEmptyRange) {
		return s, nil
	}
	if err != nil {
		return Span{}, err
	}
	s.Range, err = xnet.WireRangeFrom(r)
	if err != nil {
		return Span{}, err
	}
	s.Size, _ = xnet.RangeSizeUint64(r)
	s.Prefixes = xnet.RangeToPrefixes(r)
	return s, nil
}
