// Package xnet 提供 IPv4 地址工具函数。
//
// xnet 基于 Go 标准库 [net/netip] 和社区库 [go4.org/netipx] 构建，
// 为 xipbin 编码提供地址与整数互转、范围解析和序列化支持。
//
// # 核心功能
//
//   - convert.go: 点分十进制与 uint32 互转（[ParseIPv4]、[FormatUint32]）、[netip.Addr] 互转
//   - parse.go: 解析单 IP/CIDR/掩码/范围格式为 [netipx.IPRange]
//   - contains.go: 范围包含判断、大小计算、CIDR 分解
//   - wire.go: [WireRange] JSON/YAML 序列化的 IP 范围结构
//
// # 快速示例
//
//	v, _ := xnet.ParseIPv4("66.96.160.133")
//	fmt.Println(v)                     // 1113628805
//	fmt.Println(xnet.FormatUint32(v))  // 66.96.160.133
//
//	r, _ := xnet.ParseRange("192.168.1.0/255.255.255.0")
//	fmt.Println(xnet.RangeToPrefixes(r))  // [192.168.1.0/24]
//
// # 输入行为说明
//
// [ParseIPv4] 使用严格解析：拒绝前导零（"01.2.3.4"）、空白、段数不为 4
// 的输入以及任何 IPv6 文本，保证 FormatUint32(ParseIPv4(s)) == s。
//
// [ParseRange] 接受 IPv4-mapped IPv6 地址并归一化为纯 IPv4，
// 纯 IPv6 输入返回 [ErrInvalidRange]。
//
// # 错误处理
//
// 预定义错误变量支持 errors.Is 判断：[ErrInvalidAddress]、[ErrInvalidRange]、[ErrOverflow]。
package xnet
