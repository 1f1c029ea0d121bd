package xipbin

import (
	"fmt"
	"unicode/utf8"
)

// Alphabet 是 token 使用的 8 个符号，下标即 3 位取值（0~7）。
// 符号按字节升序排列，因此 token 的字典序与地址顺序一致。
const Alphabet = "01abcdef"

// BitsPerChar 每个 token 字符承载的二分次数。
const BitsPerChar = 3

// bitWeights 一个字符内 3 次二分对应的位权，高位在前。
var bitWeights = [BitsPerChar]byte{4, 2, 1}

// decodeTable 是 Alphabet 的逆映射，包初始化时构建，之后只读。
// 不在字母表中的字节为 -1。
var decodeTable = buildDecodeTable()

func buildDecodeTable() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}

// invalidCharError 构造指向 token[i] 的 ErrInvalidCharacter。
func invalidCharError(token string, i int) error {
	r, _ := utf8.DecodeRuneInString(token[i:])
	return fmt.Errorf("%w: %q at offset %d in %q", ErrInvalidCharacter, r, i, token)
}
