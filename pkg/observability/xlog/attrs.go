package xlog

import (
	"log/slog"
	"time"
)

// 常用属性 Key
const (
	KeyError     = "error"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyComponent = "component"
	KeyOperation = "operation"

	// KeyToken xipbin token
	KeyToken = "token"
	// KeyPrecision token 长度
	KeyPrecision = "precision"
	// KeyMargin 解码误差（±）
	KeyMargin = "margin"
	// KeyAddr IPv4 地址或其文本输入
	KeyAddr = "addr"
	// KeyLine 输入行号
	KeyLine = "line"
)

// Err 创建错误属性，err 为 nil 时返回空属性（被 slog 忽略）。
//
//	if err != nil {
//	    logger.Error(ctx, "decode failed", xlog.Err(err))
//	}
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 创建组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名属性
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Count 创建计数属性
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Token 创建 token 属性
func Token(token string) slog.Attr {
	return slog.String(KeyToken, token)
}

// Precision 创建精度属性
func Precision(p int) slog.Attr {
	return slog.Int(KeyPrecision, p)
}

// Margin 创建误差属性
func Margin(m float64) slog.Attr {
	return slog.Float64(KeyMargin, m)
}

// Addr 创建地址属性
func Addr(s string) slog.Attr {
	return slog.String(KeyAddr, s)
}

// Line 创建输入行号属性
func Line(n int) slog.Attr {
	return slog.Int(KeyLine, n)
}
