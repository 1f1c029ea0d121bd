// Package xlru 提供带 TTL 的泛型 LRU 缓存。
//
// 基于 [github.com/hashicorp/golang-lru/v2/expirable]，补充了配置校验、
// 关闭语义和清理 goroutine 的回收。xbucket 用它作为地址去重窗口。
//
//	cache, err := xlru.New[uint32, struct{}](xlru.Config{Size: 1024, TTL: time.Minute})
//	if err != nil {
//	    return err
//	}
//	defer cache.Close()
//	cache.Set(42, struct{}{})
//	cache.Contains(42) // true
package xlru
