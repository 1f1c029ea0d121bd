// Package observability 提供日志和采样相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展
//   - xrotate: 日志文件轮转
//   - xsampling: 按地址一致性采样
package observability
