// Package xsampling 对 IPv4 地址做一致性采样。
//
// 处理超大日志时，[AddrSampler] 按地址哈希（xxhash）保留固定比例的地址：
// 同一地址的所有出现要么全部保留，要么全部丢弃，
// 所以保留下来的地址在各 token 桶中的计数仍然准确。
//
//	s, err := xsampling.New(0.1)
//	if err != nil {
//	    return err
//	}
//	if s.Keep(v) {
//	    counter.AddUint32(v)
//	}
package xsampling
