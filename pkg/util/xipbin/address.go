package xipbin

import (
	"fmt"
	"net/netip"

	"github.com/omeyang/xipbin/pkg/util/xnet"
)

// AddressToInteger 将点分十进制地址转换为 uint32（网络字节序，首段为最高字节）。
// 格式错误返回 [ErrFormat]。
func AddressToInteger(s string) (uint32, error) {
	v, err := xnet.ParseIPv4(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return v, nil
}

// IntegerToAddress 将整数转换为点分十进制地址。
// v 超出 [0, MaxAddress] 时返回 [ErrRange]。
func IntegerToAddress(v int64) (string, error) {
	u, err := xnet.Uint32FromInt64(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRange, err)
	}
	return xnet.FormatUint32(u), nil
}

// EncodeAddress 编码点分十进制地址。
func EncodeAddress(s string, precision int) (string, error) {
	v, err := AddressToInteger(s)
	if err != nil {
		return "", err
	}
	return Encode(float64(v), precision), nil
}

// EncodeAddr 编码 [netip.Addr]。IPv4-mapped IPv6 按 IPv4 处理，
// 其它地址返回 [ErrFormat]。
func EncodeAddr(addr netip.Addr, precision int) (string, error) {
	v, ok := xnet.AddrToUint32(addr)
	if !ok {
		return "", fmt.Errorf("%w: %v is not an IPv4 address", ErrFormat, addr)
	}
	return Encode(float64(v), precision), nil
}
