package xbucket

import "errors"

var (
	// ErrInvalidPrecision 表示桶精度不在 [1, xipbin.MaxPrecision] 内。
	ErrInvalidPrecision = errors.New("xbucket: precision out of range")

	// ErrClosed 表示计数器已关闭。
	ErrClosed = errors.New("xbucket: counter is closed")
)
