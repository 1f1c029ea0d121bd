package xsampling

import "errors"

// ErrInvalidRate 表示采样比率不在 (0.0, 1.0] 内或为 NaN。
var ErrInvalidRate = errors.New("xsampling: rate must be in (0.0, 1.0]")
