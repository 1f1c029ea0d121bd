package xbucket

import (
	"fmt"
	"net/netip"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/omeyang/xipbin/pkg/observability/xsampling"
	"github.com/omeyang/xipbin/pkg/util/xipbin"
	"github.com/omeyang/xipbin/pkg/util/xlru"
	"github.com/omeyang/xipbin/pkg/util/xnet"
)

// DefaultDedupSize 是去重窗口默认容纳的不同地址数。
const DefaultDedupSize = 1 << 16

// Config 定义计数器配置。
type Config struct {
	// Precision 桶 token 长度，必须在 [1, xipbin.MaxPrecision] 内。
	Precision int `koanf:"precision"`

	// DedupSize 去重窗口容量，0 使用 DefaultDedupSize。
	// 窗口容纳全部不同地址时 Unique 是精确值，超出后为近似值。
	DedupSize int `koanf:"dedup_size"`

	// DedupTTL 地址在去重窗口内的有效期，0 表示不过期。
	// 过期后再次出现的地址重新计为 unique。
	DedupTTL time.Duration `koanf:"dedup_ttl"`

	// SampleRate 按地址一致采样的比率，0 或 1 表示不采样。
	// 被采样丢弃的地址只计入 Skipped。
	SampleRate float64 `koanf:"sample_rate"`
}

// Bucket 是一个 token 桶的统计结果。
type Bucket struct {
	Token  string         `json:"token" yaml:"token"`
	Hits   uint64         `json:"hits" yaml:"hits"`
	Unique uint64         `json:"unique" yaml:"unique"`
	Range  xnet.WireRange `json:"range" yaml:"range"`
}

type tally struct {
	hits   uint64
	unique uint64
}

// Counter 按 xipbin token 对地址分桶计数，并发安全。
// 必须通过 [New] 创建，使用完毕后调用 Close 释放去重窗口。
type Counter struct {
	mu        sync.Mutex
	precision int
	sampler   xsampling.Sampler
	seen      *xlru.Cache[uint32, struct{}]
	tallies   map[string]*tally
	total     uint64
	skipped   uint64
	closed    bool
}

// New 创建计数器。
func New(cfg Config) (*Counter, error) {
	if cfg.Precision < 1 || cfg.Precision > xipbin.MaxPrecision {
		return nil, fmt.Errorf("%w: %d, want 1~%d", ErrInvalidPrecision, cfg.Precision, xipbin.MaxPrecision)
	}
	sampler, err := xsampling.New(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("xbucket: %w", err)
	}
	size := cfg.DedupSize
	if size == 0 {
		size = DefaultDedupSize
	}
	seen, err := xlru.New[uint32, struct{}](xlru.Config{Size: size, TTL: cfg.DedupTTL})
	if err != nil {
		return nil, fmt.Errorf("xbucket: dedup window: %w", err)
	}
	return &Counter{
		precision: cfg.Precision,
		sampler:   sampler,
		seen:      seen,
		tallies:   make(map[string]*tally),
	}, nil
}

// Precision 返回桶 token 长度。
func (c *Counter) Precision() int {
	return c.precision
}

// AddUint32 记录一次地址出现，返回其所在桶的 token。
// 被采样丢弃的地址同样返回 token，但只计入 Skipped。
func (c *Counter) AddUint32(v uint32) (string, error) {
	token := xipbin.Encode(float64(v), c.precision)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", ErrClosed
	}
	if !c.sampler.Keep(v) {
		c.skipped++
		return token, nil
	}

	t, ok := c.tallies[token]
	if !ok {
		t = &tally{}
		c.tallies[token] = t
	}
	t.hits++
	c.total++
	if _, dup := c.seen.Get(v); !dup {
		t.unique++
	}
	c.seen.Set(v, struct{}{})
	return token, nil
}

// Add 记录一次 [netip.Addr] 出现。非 IPv4 地址返回 xipbin.ErrFormat。
func (c *Counter) Add(addr netip.Addr) (string, error) {
	v, ok := xnet.AddrToUint32(addr)
	if !ok {
		return "", fmt.Errorf("%w: %v is not an IPv4 address", xipbin.ErrFormat, addr)
	}
	return c.AddUint32(v)
}

// AddString 记录一次点分十进制地址出现，输入会去除首尾空白。
func (c *Counter) AddString(s string) (string, error) {
	v, err := xipbin.AddressToInteger(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return c.AddUint32(v)
}

// Buckets 返回按 token 排序（即按地址排序）的统计快照。
func (c *Counter) Buckets() []Bucket {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Bucket, 0, len(c.tallies))
	for token, t := range c.tallies {
		b := Bucket{Token: token, Hits: t.hits, Unique: t.unique}
		// precision <= MaxPrecision 的 token 区间必然包含整数地址
		if r, err := xipbin.TokenRange(token); err == nil {
			b.Range, _ = xnet.WireRangeFrom(r)
		}
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Bucket) int { return strings.Compare(a.Token, b.Token) })
	return out
}

// Len 返回非空桶的数量。
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tallies)
}

// Total 返回累计计入桶的地址次数，不含被采样丢弃的。
func (c *Counter) Total() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Skipped 返回被采样丢弃的地址次数。
func (c *Counter) Skipped() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skipped
}

// Close 释放去重窗口，之后 Add 系列方法返回 [ErrClosed]。
// 已有统计仍可通过 Buckets 读取。
func (c *Counter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.seen.Close()
}
