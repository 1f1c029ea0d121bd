// Package xipbin 提供 IPv4 地址的可变精度区间编码（ipbin）。
//
// 编码方式类似 geohash，只是作用在 32 位地址空间而非二维坐标上：
// 从区间 [0, 4294967295] 开始反复二分，每次比较记录 1 位，
// 每 3 位映射为字母表 "01abcdef" 中的一个字符。
// token 越长精度越高，每增加一个字符误差缩小 8 倍：
//
//	精度  误差（±地址数）
//	0     2,147,483,647.5
//	1     268,435,456
//	2     33,554,432
//	3     4,194,304
//	4     524,288
//	5     65,536
//	6     8,192
//	7     1,024
//	8     128
//	9     16
//	10    2
//
// # 核心功能
//
//   - codec.go: [Encode]、[Decode]、[DecodeExactly]
//   - address.go: 点分十进制与整数互转（[AddressToInteger]、[IntegerToAddress]）
//   - interval.go: token 区间、整数地址范围、CIDR 覆盖、[EncodeRange]
//   - span.go: [Describe] 汇总 token 的全部信息
//
// # 快速示例
//
//	v, _ := xipbin.AddressToInteger("66.96.160.133")  // 1113628805
//	token := xipbin.Encode(float64(v), 5)             // "a0ce0"
//	value, margin, _ := xipbin.DecodeExactly(token)   // 1113653247.74, 65535.99
//
// # 设计决策
//
//   - 精度上限固定为 [MaxPrecision]（10）：超出部分被静默截断，
//     保证与既有 token 一致。30 次二分后误差为 ±2，不再细分到单个地址
//   - token 具有前缀层次性：截断 token 得到同一地址的低精度 token，
//     且字母表按字节升序排列，token 排序即地址排序
//   - [Encode] 接受 float64，非整数输入同样按二分比较处理
//   - 字母表逆映射表在包初始化时构建，之后只读，所有函数可并发调用
//   - 解码遇到字母表外字符返回 [ErrInvalidCharacter]，从不静默忽略
//
// # 错误处理
//
// 预定义错误变量支持 errors.Is 判断：
// [ErrFormat]、[ErrRange]、[ErrInvalidCharacter]、[ErrEmptyRange]。
package xipbin
