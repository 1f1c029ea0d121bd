package xnet

import (
	"encoding/binary"
	"fmt"
	"math"
	"net/netip"
)

// MaxUint32Addr 是 IPv4 地址空间的最大整数值（255.255.255.255）。
const MaxUint32Addr = math.MaxUint32

// ParseIPv4 将点分十进制 IPv4 地址解析为 uint32（网络字节序，首段为最高字节）。
//
// 严格模式：必须恰好 4 段、每段 0~255、不允许前导零和空白。
// 因此 FormatUint32(ParseIPv4(s)) == s 对所有可解析的 s 成立。
// IPv6 文本（包括 IPv4-mapped 形式）同样返回 [ErrInvalidAddress]。
func ParseIPv4(s string) (uint32, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if !addr.Is4() {
		return 0, fmt.Errorf("%w: %q is not a dotted quad", ErrInvalidAddress, s)
	}
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:]), nil
}

// FormatUint32 将 uint32 格式化为点分十进制字符串。
func FormatUint32(v uint32) string {
	return AddrFromUint32(v).String()
}

// Uint32FromInt64 校验 v 位于 IPv4 地址空间内并收窄为 uint32。
// 越界返回 [ErrOverflow]。
func Uint32FromInt64(v int64) (uint32, error) {
	if v < 0 || v > MaxUint32Addr {
		return 0, fmt.Errorf("%w: %d", ErrOverflow, v)
	}
	return uint32(v), nil
}

// AddrFromUint32 从 IPv4 的 uint32 表示创建 [netip.Addr]。
// 使用网络字节序（大端）。
func AddrFromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

// AddrToUint32 将 IPv4 地址转换为 uint32（网络字节序）。
// IPv4-mapped IPv6 地址按 IPv4 处理；其它地址返回 (0, false)。
func AddrToUint32(addr netip.Addr) (uint32, bool) {
	if !addr.Is4() && !addr.Is4In6() {
		return 0, false
	}
	b := addr.Unmap().As4()
	return binary.BigEndian.Uint32(b[:]), true
}
