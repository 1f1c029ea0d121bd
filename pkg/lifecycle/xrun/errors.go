package xrun

import "errors"

// ErrNilFunc 表示传给 Go/GoWithName 的任务函数为 nil。
var ErrNilFunc = errors.New("xrun: nil task func")
