package xnet

import (
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// ParseRange 从字符串解析 IPv4 范围。支持 4 种格式：
//   - 单 IP: "192.168.1.1"
//   - CIDR: "192.168.1.0/24"
//   - 掩码: "192.168.1.0/255.255.255.0"
//   - 范围: "192.168.1.1-192.168.1.100"
//
// 输入会自动去除首尾空白字符。IPv4-mapped IPv6 地址归一化为纯 IPv4，
// 其它 IPv6 输入返回 [ErrInvalidRange]。
func ParseRange(s string) (netipx.IPRange, error) {
	s = strings.TrimSpace(s)

	if start, end, ok := strings.Cut(s, "-"); ok {
		from, err := parseV4(start)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("%w: invalid range start: %w", ErrInvalidRange, err)
		}
		to, err := parseV4(end)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("%w: invalid range end: %w", ErrInvalidRange, err)
		}
		r := netipx.IPRangeFrom(from, to)
		if !r.IsValid() {
			return netipx.IPRange{}, fmt.Errorf("%w: start %s > end %s", ErrInvalidRange, from, to)
		}
		return r, nil
	}

	if addrPart, maskStr, ok := strings.Cut(s, "/"); ok {
		addrPart = strings.TrimSpace(addrPart)
		maskStr = strings.TrimSpace(maskStr)
		if strings.Contains(maskStr, ".") {
			return parseRangeWithMask(addrPart, maskStr)
		}
		prefix, err := netip.ParsePrefix(addrPart + "/" + maskStr)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("%w: invalid CIDR: %w", ErrInvalidRange, err)
		}
		if prefix.Addr().Is4In6() && prefix.Bits() >= 96 {
			prefix = netip.PrefixFrom(prefix.Addr().Unmap(), prefix.Bits()-96)
		}
		if !prefix.Addr().Is4() {
			return netipx.IPRange{}, fmt.Errorf("%w: not an IPv4 prefix: %s", ErrInvalidRange, s)
		}
		return netipx.RangeOfPrefix(prefix.Masked()), nil
	}

	addr, err := parseV4(s)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	return netipx.IPRangeFrom(addr, addr), nil
}

// parseV4 解析单个 IPv4 地址，接受 IPv4-mapped IPv6 并去映射。
func parseV4(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, err
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%s is not an IPv4 address", addr)
	}
	return addr, nil
}

// parseRangeWithMask 解析掩码格式的 IPv4 范围，包含掩码连续性校验。
// 非连续掩码（如 "255.0.255.0"）会返回 ErrInvalidRange。
func parseRangeWithMask(addrStr, maskStr string) (netipx.IPRange, error) {
	addr, err := parseV4(addrStr)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid address: %w", ErrInvalidRange, err)
	}
	mask, err := parseV4(maskStr)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid mask: %w", ErrInvalidRange, err)
	}

	addrUint, _ := AddrToUint32(addr)
	maskUint, _ := AddrToUint32(mask)

	// 合法掩码为前缀全 1 后缀全 0。
	inverted := ^maskUint
	if inverted&(inverted+1) != 0 {
		return netipx.IPRange{}, fmt.Errorf("%w: non-contiguous mask: %s", ErrInvalidRange, maskStr)
	}

	start := addrUint & maskUint
	end := start | inverted
	return netipx.IPRangeFrom(AddrFromUint32(start), AddrFromUint32(end)), nil
}
