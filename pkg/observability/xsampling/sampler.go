package xsampling

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Sampler 决定是否保留一个 IPv4 地址（uint32 形式）。
type Sampler interface {
	Keep(addr uint32) bool
}

type allSampler struct{}

func (allSampler) Keep(uint32) bool { return true }

// All 返回保留全部地址的采样器。
func All() Sampler {
	return allSampler{}
}

// AddrSampler 按地址做一致性采样：同一地址在同一比率下总得到相同决策，
// 跨进程、跨文件一致，因此被保留地址的 hits/unique 统计是完整的。
type AddrSampler struct {
	rate      float64
	threshold uint64
}

// NewAddrSampler 创建按地址一致采样的采样器，rate 必须在 (0, 1] 内。
func NewAddrSampler(rate float64) (*AddrSampler, error) {
	if math.IsNaN(rate) || rate <= 0 || rate > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	s := &AddrSampler{rate: rate, threshold: math.MaxUint64}
	if rate < 1 {
		s.threshold = uint64(rate * math.Exp2(64))
	}
	return s, nil
}

// Keep 对地址的大端字节做 xxhash，低于阈值即保留。
func (s *AddrSampler) Keep(addr uint32) bool {
	if s.rate >= 1 {
		return true
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], addr)
	return xxhash.Sum64(b[:]) < s.threshold
}

// Rate 返回采样比率。
func (s *AddrSampler) Rate() float64 {
	return s.rate
}

// New 按比率返回采样器：rate 为 0 或 1 时保留全部，其余同 [NewAddrSampler]。
func New(rate float64) (Sampler, error) {
	if rate == 0 || rate == 1 {
		return All(), nil
	}
	return NewAddrSampler(rate)
}

var (
	_ Sampler = allSampler{}
	_ Sampler = (*AddrSampler)(nil)
)
