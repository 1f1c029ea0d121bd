package xipbin

import (
	"fmt"
	"math"
	"net/netip"

	"go4.org/netipx"

	"github.com/omeyang/xipbin/pkg/util/xnet"
)

// MaxAddress 是 IPv4 地址空间的最大整数值。
const MaxAddress = xnet.MaxUint32Addr

// Interval 是二分过程中的候选地址区间（实数）。
// 不变式：Low <= High。
type Interval struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// fullSpace 是二分的起点：整个 IPv4 整数空间。
var fullSpace = Interval{Low: 0, High: MaxAddress}

// Mid 返回区间中点。
func (iv Interval) Mid() float64 {
	return (iv.Low + iv.High) / 2
}

// Width 返回区间宽度。
func (iv Interval) Width() float64 {
	return iv.High - iv.Low
}

// split 按中点二分，upper 为 true 时保留上半区间。
func (iv Interval) split(upper bool) Interval {
	mid := iv.Mid()
	if upper {
		return Interval{Low: mid, High: iv.High}
	}
	return Interval{Low: iv.Low, High: mid}
}

// TokenInterval 返回按 token 逐位二分后剩余的实数区间。
// 空 token 返回整个地址空间。
func TokenInterval(token string) (Interval, error) {
	iv := fullSpace
	for i := 0; i < len(token); i++ {
		v := decodeTable[token[i]]
		if v < 0 {
			return Interval{}, invalidCharError(token, i)
		}
		for _, w := range bitWeights {
			iv = iv.split(byte(v)&w != 0)
		}
	}
	return iv, nil
}

// Margin 返回长度为 precision 的 token 解码后的误差（正负）。
//
//	0 → ±2147483647.5   5 → ±65536
//	1 → ±268435456      8 → ±128
//	2 → ±33554432      10 → ±2
//
// 与 [DecodeExactly] 使用相同的逐位减半计算，结果逐位一致。
// 负数按 0 处理；不做上限截断，因为解码接受任意长度的 token。
func Margin(precision int) float64 {
	m := fullSpace.Mid()
	for range max(precision, 0) * BitsPerChar {
		m /= 2
	}
	return m
}

// TokenRange 返回二分路径与 token 一致的全部整数地址。
//
// 对 len(token) <= MaxPrecision，即满足 Encode(x, len(token)) == token 的 x 的集合。
// 计算沿用编码的浮点二分，边界与 [Encode] 的判定严格一致：
// 地址 x 属于区间当且仅当 Low < x <= High（Low 为 0 时包含 0）。
// 超长 token 的区间可能不含整数，此时返回 [ErrEmptyRange]。
func TokenRange(token string) (netipx.IPRange, error) {
	iv, err := TokenInterval(token)
	if err != nil {
		return netipx.IPRange{}, err
	}
	var from uint64
	if iv.Low > 0 {
		from = uint64(math.Floor(iv.Low)) + 1
	}
	to := uint64(math.Floor(iv.High))
	if from > to {
		return netipx.IPRange{}, fmt.Errorf("%w: %q", ErrEmptyRange, token)
	}
	return xnet.RangeFromUint32(uint32(from), uint32(to)), nil
}

// TokenPrefixes 返回覆盖 token 地址集合的最少 CIDR 前缀，
// 便于在只支持 CIDR 查询的存储中检索某个 token 桶。
func TokenPrefixes(token string) ([]netip.Prefix, error) {
	r, err := TokenRange(token)
	if err != nil {
		return nil, err
	}
	return xnet.RangeToPrefixes(r), nil
}

// Contains 报告 addr 是否落在 token 对应的地址桶内。
// token 无效或 addr 不是 IPv4 时返回 false。
func Contains(token string, addr netip.Addr) bool {
	r, err := TokenRange(token)
	if err != nil {
		return false
	}
	return xnet.RangeContainsV4(r.From(), r.To(), addr)
}

// EncodeRange 返回能容纳 r 中全部地址的最长 token（长度不超过 precision）。
//
// 编码对地址单调，同一 token 桶是连续区间，
// 因此两端点编码的公共前缀即为答案。
// r 必须是有效的 IPv4 范围，否则返回 [ErrFormat]。
func EncodeRange(r netipx.IPRange, precision int) (string, error) {
	if !r.IsValid() {
		return "", fmt.Errorf("%w: invalid range %v", ErrFormat, r)
	}
	from, ok1 := xnet.AddrToUint32(r.From())
	to, ok2 := xnet.AddrToUint32(r.To())
	if !ok1 || !ok2 {
		return "", fmt.Errorf("%w: %v is not an IPv4 range", ErrFormat, r)
	}
	a := Encode(float64(from), precision)
	b := Encode(float64(to), precision)
	n := 0
	for n < len(a) && a[n] == b[n] {
		n++
	}
	return a[:n], nil
}
