package xipbin

import "errors"

var (
	// ErrFormat 表示点分十进制地址格式错误（段数、非数字、越界、前导零）。
	ErrFormat = errors.New("xipbin: malformed dotted-quad address")

	// ErrRange 表示整数超出 IPv4 地址空间 [0, 4294967295]。
	ErrRange = errors.New("xipbin: integer outside IPv4 address space")

	// ErrInvalidCharacter 表示 token 含有字母表 {0,1,a,b,c,d,e,f} 以外的字符。
	ErrInvalidCharacter = errors.New("xipbin: invalid token character")

	// ErrEmptyRange 表示 token 过长，对应区间内不含任何整数地址。
	ErrEmptyRange = errors.New("xipbin: token interval holds no integer address")
)
