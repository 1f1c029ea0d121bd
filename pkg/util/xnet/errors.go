package xnet

import "errors"

var (
	// ErrInvalidAddress 表示无效的 IPv4 地址字符串（段数错误、非数字、越界、前导零等）。
	ErrInvalidAddress = errors.New("xnet: invalid IPv4 address")

	// ErrInvalidRange 表示无效的 IPv4 范围格式。
	ErrInvalidRange = errors.New("xnet: invalid IPv4 range")

	// ErrOverflow 表示整数值超出 IPv4 地址空间 [0, 4294967295]。
	ErrOverflow = errors.New("xnet: value out of IPv4 address space")
)
