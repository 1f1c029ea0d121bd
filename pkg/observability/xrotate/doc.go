// Package xrotate 提供日志文件轮转，xipbin 命令行的 --log-file 输出经由这里。
//
// [New] 基于 lumberjack v2 按大小轮转，备份按数量和天数清理。
// [Config] 带 koanf 标签，可以直接从配置文件的 log.rotate 节解码后通过 [WithConfig] 传入。
package xrotate
