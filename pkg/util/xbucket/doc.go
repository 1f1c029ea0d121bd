// Package xbucket 按 xipbin token 对 IPv4 地址分桶计数。
//
// 典型场景是日志分析：同一精度的 token 就是一个连续地址段，
// 统计每段的出现次数（Hits）和不同地址数（Unique）。
//
//	c, err := xbucket.New(xbucket.Config{Precision: 5})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//	c.AddString("66.96.160.133")
//	for _, b := range c.Buckets() {
//	    fmt.Println(b.Token, b.Hits, b.Unique, b.Range)
//	}
//
// Unique 依赖有界的 LRU 去重窗口（[xlru]），窗口能容纳全部不同地址时为精确值。
//
// Config.SampleRate 在 (0,1) 内时按地址做确定性采样（[xsampling]），
// 被丢弃的地址仍返回 token，只计入 Skipped。
package xbucket
