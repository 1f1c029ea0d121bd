// Package util 提供编码与地址处理相关的子包。
//
// 子包列表：
//   - xipbin: IPv4 地址的可变精度区间编码
//   - xnet: IPv4 地址工具，基于 net/netip + go4.org/netipx
//   - xbucket: 按 token 分桶计数
//   - xlru: LRU 缓存，泛型支持、自动 TTL 过期
package util
