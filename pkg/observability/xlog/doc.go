// Package xlog 基于 log/slog 的结构化日志库。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：记录第一个配置错误，Build 时返回）：
//
//	logger, cleanup, err := xlog.New().
//	    SetLevelString("debug").
//	    SetFormat("json").
//	    SetRotation("/var/log/xipbin/xipbin.log").
//	    Build()
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
// [Discard] 返回丢弃输出的 Logger。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// Level 实现 encoding.TextMarshaler/TextUnmarshaler，可从配置文件直接解码。
//
// # 便捷属性
//
// 通用：[Err]、[Duration]、[Component]、[Operation]、[Count]。
// 编码相关：[Token]、[Precision]、[Margin]、[Addr]、[Line]。
//
// # 派生 Logger
//
// [Logger.With] 和 [Logger.WithGroup] 返回 [Logger]，底层实现同时满足
// [LoggerWithLevel]，派生 logger 共享父级的 LevelVar。
package xlog
