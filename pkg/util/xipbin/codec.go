package xipbin

const (
	// MaxPrecision 是 token 的最大长度。10 个字符即 30 次二分，
	// 误差 ±2，不再细分到单个地址，与既有 token 保持兼容。
	MaxPrecision = 10

	// DefaultPrecision 是未指定精度时使用的 token 长度。
	DefaultPrecision = MaxPrecision
)

// clampPrecision 将精度截断到 [0, MaxPrecision]。
func clampPrecision(p int) int {
	return min(max(p, 0), MaxPrecision)
}

// Encode 将地址值编码为长度为 precision 的 token。
//
// value 通常是 IPv4 地址的整数值；接受任意实数，按同样的二分比较处理
// （value 大于中点时取上半区间）。precision 被静默截断到 [0, MaxPrecision]。
//
// 生成的 token 具有前缀层次性：Encode(x, p1) 恒等于 Encode(x, p2)[:p1]（p1 <= p2）。
func Encode(value float64, precision int) string {
	buf := make([]byte, clampPrecision(precision))
	iv := fullSpace
	for i := range buf {
		var ch byte
		for _, w := range bitWeights {
			upper := value > iv.Mid()
			if upper {
				ch |= w
			}
			iv = iv.split(upper)
		}
		buf[i] = Alphabet[ch]
	}
	return string(buf)
}

// DecodeExactly 解码 token，返回地址估计值和误差 margin。
//
// value 是二分结束后区间的中点，margin 是区间半宽，
// 每个字符使 margin 缩小 8 倍。空 token 返回整个空间的中点与半宽
// (2147483647.5, 2147483647.5)。
// token 含字母表以外的字符时返回 [ErrInvalidCharacter]，不返回部分结果。
func DecodeExactly(token string) (value, margin float64, err error) {
	iv, err := TokenInterval(token)
	if err != nil {
		return 0, 0, err
	}
	return iv.Mid(), Margin(len(token)), nil
}

// Decode 解码 token，只返回地址估计值。
func Decode(token string) (float64, error) {
	value, _, err := DecodeExactly(token)
	return value, err
}
