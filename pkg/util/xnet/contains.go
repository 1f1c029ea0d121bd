package xnet

import (
	"net/netip"

	"go4.org/netipx"
)

// RangeContainsV4 使用 uint32 比较判断 addr 是否位于 [from, to]。
// 任一参数不是 IPv4 时返回 false。
func RangeContainsV4(from, to, addr netip.Addr) bool {
	fromU, ok1 := AddrToUint32(from)
	toU, ok2 := AddrToUint32(to)
	addrU, ok3 := AddrToUint32(addr)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	return addrU >= fromU && addrU <= toU
}

// RangeFromUint32 由整数起止值构建 IPv4 范围。from > to 时返回的范围无效（IsValid 为 false）。
func RangeFromUint32(from, to uint32) netipx.IPRange {
	return netipx.IPRangeFrom(AddrFromUint32(from), AddrFromUint32(to))
}

// RangeSizeUint64 计算 IPv4 范围包含的地址数量。
// 非 IPv4 范围或无效范围返回 (0, false)。
func RangeSizeUint64(r netipx.IPRange) (uint64, bool) {
	if !r.IsValid() {
		return 0, false
	}
	fromU, ok1 := AddrToUint32(r.From())
	toU, ok2 := AddrToUint32(r.To())
	if !ok1 || !ok2 {
		return 0, false
	}
	return uint64(toU-fromU) + 1, true
}

// RangeToPrefixes 将 IP 范围分解为最少数量的 CIDR 前缀。
//
//	r, _ := xnet.ParseRange("192.168.1.0-192.168.1.255")
//	prefixes := xnet.RangeToPrefixes(r)  // [192.168.1.0/24]
func RangeToPrefixes(r netipx.IPRange) []netip.Prefix {
	if !r.IsValid() {
		return nil
	}
	return r.Prefixes()
}
